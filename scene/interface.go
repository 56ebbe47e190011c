package scene

import "github.com/sun-23/go-multiuser/common/types"

//go:generate mockgen -typed -package=scene -destination=./mocks.go -source=./interface.go

// Renderer displays models attached to anchors.
type Renderer interface {
	Attach(types.AnchorID, Model)
	Detach(types.AnchorID)
}
