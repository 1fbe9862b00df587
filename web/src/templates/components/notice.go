package components

import (
	"github.com/nfrund/formwire/internal/notify"
	"github.com/nfrund/formwire/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// NoticeRegion is the fixed container toasts stack in. Server flashes
// seed it so messages delivered across a redirect show on page load;
// the client runtime appends socket-delivered notices to the same
// region and removes them after their display time.
func NoticeRegion(flashes view.FlashData) cmp.Node {
	return g.Div(
		g.ID("notice-region"),
		g.Class("notice-region"),
		g.Aria("live", "polite"),
		noticeGroup(notify.SeverityInfo, flashes.Info),
		noticeGroup(notify.SeveritySuccess, flashes.Success),
		noticeGroup(notify.SeverityWarning, flashes.Warning),
		noticeGroup(notify.SeverityError, flashes.Error),
	)
}

func noticeGroup(severity notify.Severity, messages []string) cmp.Node {
	return cmp.Map(messages, func(msg string) cmp.Node {
		return Notice(severity, msg)
	})
}

// Notice renders one toast. The severity picks the color treatment.
func Notice(severity notify.Severity, message string) cmp.Node {
	return g.Div(
		g.Class("notice notice-"+string(severity)),
		g.Role("status"),
		g.Span(g.Class("notice-message"), cmp.Text(message)),
		g.Button(
			g.Type("button"),
			g.Class("notice-dismiss"),
			g.Aria("label", "Dismiss"),
			cmp.Text("×"),
		),
	)
}
