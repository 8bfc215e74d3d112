package platform

// DefaultAppName is reported to the notification center when Options.AppName is empty.
const DefaultAppName = "PaintBrush"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender to notification centers that group by application.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}
