package services

import (
	"errors"
	"fmt"
	"sync"

	"github/itish2003/growthvision/models"
)

var ErrUnknownPage = errors.New("unknown page")

// NavigationShell remembers which page is shown. It owns no chat state, so
// switching pages never touches the transcript.
type NavigationShell struct {
	mu   sync.Mutex
	page models.Page
}

// NewNavigationShell starts on the about page.
func NewNavigationShell() *NavigationShell {
	return &NavigationShell{page: models.PageAbout}
}

func (n *NavigationShell) Current() models.Page {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.page
}

func (n *NavigationShell) Select(page models.Page) error {
	if !page.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.page = page
	return nil
}
