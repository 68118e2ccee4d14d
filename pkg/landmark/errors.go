package landmark

import "errors"

// Error kinds returned by the landmark subsystem, as package-level sentinel
// errors.
var (
	// ErrAlreadyInitialized is returned when Build is called on a Landmarks
	// instance that has already been built or was opened with Load.
	ErrAlreadyInitialized = errors.New("landmark: already initialized")

	// ErrGraphMismatch is returned when a persisted table's core-node count
	// disagrees with the graph being opened against it.
	ErrGraphMismatch = errors.New("landmark: graph mismatch: core node count differs from persisted table")

	// ErrFactorOverflow is returned when factor*1e6 would not fit an int32,
	// or factor is not finite/positive.
	ErrFactorOverflow = errors.New("landmark: factor overflow")

	// ErrValueOutOfRange is returned when a weight would exceed int32 range
	// before quantisation.
	ErrValueOutOfRange = errors.New("landmark: value out of range before quantisation")

	// ErrTooManySubnetworks is returned when a build would need more than
	// 127 subnetwork ids (the signed-byte subnetwork table can't hold it).
	ErrTooManySubnetworks = errors.New("landmark: too many subnetworks (max 127)")

	// ErrDisconnectedSubnetworks is returned at query time when the two
	// endpoints resolve to different subnetworks.
	ErrDisconnectedSubnetworks = errors.New("landmark: endpoints are in disconnected subnetworks")

	// ErrUnreachableSubnetwork is returned at query time when an endpoint's
	// subnetwork is UNSET or UNCLEAR.
	ErrUnreachableSubnetwork = errors.New("landmark: endpoint subnetwork is unset or unclear")

	// ErrInsufficientSuggestions is returned when a supplied landmark
	// suggestion list is shorter than K.
	ErrInsufficientSuggestions = errors.New("landmark: fewer landmark suggestions than K")

	// ErrCancelled is returned when a build is interrupted cooperatively.
	ErrCancelled = errors.New("landmark: build cancelled")
)
