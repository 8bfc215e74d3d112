package notify

import (
	"image"
	"os"
	"testing"

	"github.com/example/paintbrush/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func recorder(out *[]sent) Sender {
	return func(title, body string, opts platform.Options) error {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			_, err := os.Stat(opts.IconPath)
			s.iconExisted = err == nil
		}
		*out = append(*out, s)
		return nil
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Copy("drawing", nil)
	n.Clear(3)
	if len(got) != 0 {
		t.Fatalf("sent %d notifications while disabled", len(got))
	}
	var nilNotifier *Notifier
	nilNotifier.Copy("x", nil)
	nilNotifier.Clear(1)
}

func TestCopyAttachesPreview(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Enable(EventCopy, true)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if len(got) != 1 {
		t.Fatalf("sent %d notifications", len(got))
	}
	if got[0].body != "Copied drawing to clipboard" || got[0].title != "PaintBrush" {
		t.Errorf("unexpected notification %+v", got[0])
	}
	if !got[0].iconExisted {
		t.Error("preview icon was missing while sending")
	}
	if _, err := os.Stat(got[0].opts.IconPath); !os.IsNotExist(err) {
		t.Error("preview icon was not removed")
	}
}

func TestClearSkipsEmptyBoard(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Enable(EventClear, true)
	n.Clear(0)
	n.Clear(1)
	n.Clear(4)
	if len(got) != 2 {
		t.Fatalf("sent %d notifications", len(got))
	}
	if got[0].body != "Cleared 1 shape" || got[1].body != "Cleared 4 shapes" {
		t.Errorf("bodies %q %q", got[0].body, got[1].body)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("PAINTBRUSH_NOTIFY_TITLE", "Sketch")
	t.Setenv("PAINTBRUSH_NOTIFY_CLEAR_TEXT", "Wiped %s")
	prefs := LoadPreferences()
	if prefs.Title != "Sketch" {
		t.Errorf("title = %q", prefs.Title)
	}
	if prefs.Events[EventClear].Template != "Wiped %s" {
		t.Errorf("clear template = %q", prefs.Events[EventClear].Template)
	}
	if prefs.Events[EventCopy].Template != DefaultPreferences().Events[EventCopy].Template {
		t.Error("copy template should keep its default")
	}
}
