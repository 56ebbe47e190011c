package anchors

import "github.com/sun-23/go-multiuser/common/types"

//go:generate mockgen -typed -package=anchors -destination=./mocks.go -source=./interface.go

// Remover retracts anchors from the tracking engine and the scene.
type Remover interface {
	RemoveAnchor(types.AnchorID)
}
