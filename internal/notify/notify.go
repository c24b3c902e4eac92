// Package notify delivers reminder notifications to the user.
package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var ErrUnsupportedPlatform = errors.New("desktop notifications are not supported on this platform")

// Notification is a fire-and-forget message with a display timeout
type Notification struct {
	Title   string
	Message string
	Timeout time.Duration
}

// Notifier delivers a notification. Delivery is not confirmed.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Func adapts a plain function to Notifier
type Func func(ctx context.Context, n Notification) error

func (f Func) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Desktop shows notifications through the platform notification tool:
// notify-send on Linux and the BSDs, osascript on macOS and a PowerShell
// toast on Windows.
type Desktop struct {
	// goos, lookPath and command are swapped in tests. An empty goos means
	// runtime.GOOS.
	goos     string
	lookPath func(string) (string, error)
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewDesktop returns a Desktop notifier
func NewDesktop() *Desktop {
	return &Desktop{lookPath: exec.LookPath, command: exec.CommandContext}
}

// Supported reports whether the platform tool is installed
func (d *Desktop) Supported() bool {
	name, _ := d.args(Notification{})
	if name == "" {
		return false
	}
	_, err := d.lookPath(name)
	return err == nil
}

func (d *Desktop) Notify(ctx context.Context, n Notification) error {
	name, args := d.args(n)
	if name == "" {
		return ErrUnsupportedPlatform
	}
	if out, err := d.command(ctx, name, args...).CombinedOutput(); err != nil {
		return fmt.Errorf("notify: %s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (d *Desktop) args(n Notification) (string, []string) {
	goos := d.goos
	if goos == "" {
		goos = runtime.GOOS
	}

	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		args := []string{"--app-name=taskmate"}
		if n.Timeout > 0 {
			args = append(args, "--expire-time="+strconv.FormatInt(n.Timeout.Milliseconds(), 10))
		}
		return "notify-send", append(args, n.Title, n.Message)
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s",
			appleScriptString(n.Message), appleScriptString(n.Title))
		return "osascript", []string{"-e", script}
	case "windows":
		return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", toastScript(n)}
	}
	return "", nil
}

func appleScriptString(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// toastScript builds a PowerShell script showing n as a Windows toast
func toastScript(n Notification) string {
	var b strings.Builder
	b.WriteString("$ErrorActionPreference = 'Stop'\n")
	b.WriteString("[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] > $null\n")
	b.WriteString("$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)\n")
	b.WriteString("$text = $template.GetElementsByTagName('text')\n")
	fmt.Fprintf(&b, "$text.Item(0).AppendChild($template.CreateTextNode(%s)) > $null\n", powerShellString(n.Title))
	fmt.Fprintf(&b, "$text.Item(1).AppendChild($template.CreateTextNode(%s)) > $null\n", powerShellString(n.Message))
	b.WriteString("$toast = [Windows.UI.Notifications.ToastNotification]::new($template)\n")
	if n.Timeout > 0 {
		fmt.Fprintf(&b, "$toast.ExpirationTime = [DateTimeOffset]::Now.AddSeconds(%d)\n", int64(n.Timeout.Round(time.Second)/time.Second))
	}
	b.WriteString("[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('taskmate').Show($toast)")
	return b.String()
}

// powerShellString quotes s as a single-quoted PowerShell literal
func powerShellString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Log writes notifications to a logger. It is used when no desktop is
// available and as the fallback when desktop delivery fails.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) Notify(_ context.Context, n Notification) error {
	l.Logger.Info().
		Str("title", n.Title).
		Dur("timeout", n.Timeout).
		Msg(n.Message)
	return nil
}

// Fallback tries Primary and hands the notification to Secondary if it fails
type Fallback struct {
	Primary   Notifier
	Secondary Notifier
}

func (f Fallback) Notify(ctx context.Context, n Notification) error {
	err := f.Primary.Notify(ctx, n)
	if err == nil {
		return nil
	}
	if serr := f.Secondary.Notify(ctx, n); serr != nil {
		return errors.Join(err, serr)
	}
	return nil
}
