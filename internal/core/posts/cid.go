package posts

import (
	"encoding/json"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// cidPrefix is CIDv1, raw codec, sha2-256
var cidPrefix = cid.Prefix{
	Version:  1,
	Codec:    cid.Raw,
	MhType:   multihash.SHA2_256,
	MhLength: -1,
}

// ComputeCID returns the content identifier of a post: the CID of its JSON
// encoding with the CID field blanked. Any change to the post's content,
// likes or comments yields a different CID, which makes it usable as a
// compare-and-swap token for conditional saves.
func ComputeCID(post *Post) (string, error) {
	snapshot := *post
	snapshot.CID = ""

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to encode post: %w", err)
	}

	c, err := cidPrefix.Sum(data)
	if err != nil {
		return "", fmt.Errorf("failed to compute post CID: %w", err)
	}

	return c.String(), nil
}
