// Package sysuuid provides an RFC 4122 UUID value type bound to a host UUID
// facility for generation, parsing and formatting.
//
// The package does not implement the generation algorithms itself. Every
// operation crosses a narrow Facility boundary made of fixed-size buffers:
// 16 bytes for the binary form and 37 bytes (36 characters plus a NUL
// terminator) for text. The default facility is backed by
// github.com/google/uuid.
//
// Basic Usage:
//
//	// Random (version 4)
//	id := sysuuid.GenerateRandom()
//	fmt.Println(id)
//
//	// Time-based (version 1), with a uniqueness indicator
//	id, safe := sysuuid.GenerateTimeSafe()
//	if !safe {
//	    log.Printf("node identifier is not stable: %v", id)
//	}
//
//	// Parse and render
//	id, err := sysuuid.Parse("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sysuuid.UnparseUpper(id))
//
// Custom Facility:
//
//	gen := sysuuid.NewGenerator(sysuuid.WithFacility(myFacility))
//	id := gen.Generate()
//
// Thread Safety:
//
// All operations are safe for concurrent use. Facility implementations must
// be as well.
//
// Values:
//
// A UUID is a [16]byte array: assignment copies it, == compares it byte for
// byte, and the zero value Nil is the uninitialized sentinel. Parse never
// reports failure through Nil; it returns ErrInvalidFormat.
//
// Time-based generation is only as unique as the node identifier. Hosts
// without a hardware address can lease one from ZooKeeper with the nodeid
// package, after which GenerateTimeSafe reports true.
package sysuuid
