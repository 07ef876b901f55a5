// Package opener opens files with the operating system's default handler.
package opener

import (
	"fmt"

	"github.com/skratchdot/open-golang/open"
)

// System opens files with the desktop's default application: xdg-open on
// Linux, open on macOS and start on Windows.
//
// The handler is started and waited for. Most handlers hand the file to an
// already running application and exit straight away.
type System struct{}

// Open opens path with the default application.
func (System) Open(path string) error {
	if err := open.Run(path); err != nil {
		return fmt.Errorf("default handler: %w", err)
	}
	return nil
}

// With opens files with a named application instead of the default one.
type With struct {
	App string
}

// Open opens path with the configured application.
func (w With) Open(path string) error {
	if err := open.RunWith(path, w.App); err != nil {
		return fmt.Errorf("%s: %w", w.App, err)
	}
	return nil
}
