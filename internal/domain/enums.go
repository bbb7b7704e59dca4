package domain

// EventType is the fixed set of event categories a listing can advertise.
type EventType string

const (
	EventFootball        EventType = "Football"
	EventMenBasketball   EventType = "Men Basketball"
	EventWomenBasketball EventType = "Women Basketball"
	EventOther           EventType = "Other"
)

// EventTypeNames returns the accepted event types as strings, in menu order.
func EventTypeNames() []string {
	return []string{
		string(EventFootball),
		string(EventMenBasketball),
		string(EventWomenBasketball),
		string(EventOther),
	}
}

// MaxImageSize caps uploaded ticket and avatar images at 5 MiB.
const MaxImageSize = 5 * 1024 * 1024

// AllowedImageTypes maps the accepted image MIME types to their canonical
// file extension.
var AllowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}
