package oauth

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync/atomic"
)

// Popup is the authorization window
type Popup interface {
	Open(url string) error
	Closed() bool
	Close() error
}

// BrowserPopup opens the consent page in the system browser. A browser tab
// cannot be observed from here, so the popup counts as closed once the
// callback server stops or Close is called.
type BrowserPopup struct {
	done   <-chan struct{}
	closed atomic.Bool
	launch func(url string) error
}

func NewBrowserPopup(done <-chan struct{}) *BrowserPopup {
	return &BrowserPopup{done: done, launch: openBrowser}
}

func (p *BrowserPopup) Open(url string) error {
	p.closed.Store(false)
	return p.launch(url)
}

func (p *BrowserPopup) Closed() bool {
	if p.closed.Load() {
		return true
	}
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *BrowserPopup) Close() error {
	p.closed.Store(true)
	return nil
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	go cmd.Wait()
	return nil
}
