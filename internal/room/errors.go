// backend/internal/room/errors.go
package room

import "errors"

var (
    ErrRoomNotFound      = errors.New("room not found")
    ErrNotJoinable       = errors.New("room not found or not joinable")
    ErrPlayerNotFound    = errors.New("player not found")
    ErrNotHost           = errors.New("only the host may perform this action")
    ErrNotOwner          = errors.New("player row does not belong to caller")
    ErrInvalidTransition = errors.New("room status cannot move backward")
)
