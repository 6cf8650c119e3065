package tui

import (
	"github.com/Veraticus/lumina/internal/app"
	"github.com/Veraticus/lumina/internal/model"
)

// viewLoadedMsg carries a freshly computed view.
type viewLoadedMsg struct {
	err     error
	profile model.UserProfile
	view    app.View
}
