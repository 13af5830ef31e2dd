package kbucket

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const (
	DefaultNodesPerKBucket = 20
	DefaultNodesToPing     = 3
	DefaultMaxIdLength     = 32
	defaultIdLength        = 20
)

type Options struct {
	// An optional byte slice representing the local node id. Splits keep the
	// buckets on the local id's side splittable and mark the others "far".
	// (Default: 20 bytes, 0x80 followed by zeros)
	LocalNodeId []byte

	// The number of nodes that a KBucket can contain before being full or split.
	// (Default: 20)
	NodesPerKBucket int

	// The number of nodes to ping when a bucket that should not be split becomes
	// full. KBucket will call Events.Ping with "NodesToPing" nodes that have not
	// been contacted the longest. (Default: 3)
	NodesToPing int

	// The maximum id length in bytes accepted for the local node id and for
	// contacts. (Default: 32)
	MaxIdLength int

	// An optional distance function. (Default: XORDistance)
	Distance DistanceFunc

	// An optional arbiter function that given two contacts with the same id
	// returns the one to keep. (Default: MaxVectorClock)
	Arbiter ArbiterFunc

	// Optional satellite data to include with the KBucket. It is never read or
	// modified by the KBucket.
	Metadata map[string]any

	Events  Events      // Receives notifications. (Default: NopEvents)
	Logger  *zap.Logger // (Default: zap.NewNop())
	Clock   clock.Clock // Used to stamp Contact.SeenAt. (Default: clock.New())
	Metrics *Metrics    // Optional collectors, nil disables metrics.
}

// defaultLocalNodeId returns the conventional maximum-distance anchor.
func defaultLocalNodeId() []byte {
	id := make([]byte, defaultIdLength)
	id[0] = 0x80

	return id
}

func setDefaults(options Options) (Options, error) {
	if options.MaxIdLength < 1 {
		options.MaxIdLength = DefaultMaxIdLength
	}

	if len(options.LocalNodeId) == 0 {
		options.LocalNodeId = defaultLocalNodeId()
	}

	if len(options.LocalNodeId) > options.MaxIdLength {
		return Options{}, fmt.Errorf("%w: local node id has %d bytes, max %d",
			ErrIdTooLong, len(options.LocalNodeId), options.MaxIdLength)
	}

	if options.NodesPerKBucket < 1 {
		options.NodesPerKBucket = DefaultNodesPerKBucket
	}

	if options.NodesToPing < 1 {
		options.NodesToPing = DefaultNodesToPing
	}

	if options.Distance == nil {
		options.Distance = XORDistance
	}

	if options.Arbiter == nil {
		options.Arbiter = MaxVectorClock
	}

	if options.Metadata == nil {
		options.Metadata = map[string]any{}
	}

	if options.Events == nil {
		options.Events = NopEvents{}
	}

	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	if options.Clock == nil {
		options.Clock = clock.New()
	}

	return options, nil
}
