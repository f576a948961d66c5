package ipfs

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

// Resolver maps a content identifier onto an HTTP URL through one of the
// configured public gateways, rotating between them request by request.
type Resolver struct {
	gateways []string
	next     uint32
}

func NewResolver(gateways []string) *Resolver {
	cleaned := make([]string, 0, len(gateways))
	for _, gateway := range gateways {
		gateway = strings.TrimSpace(gateway)
		if gateway != "" {
			cleaned = append(cleaned, gateway)
		}
	}
	return &Resolver{gateways: cleaned}
}

func (r *Resolver) Resolve(cid string) (string, error) {
	cid = strings.TrimSpace(cid)
	if cid == "" {
		return "", errors.New("empty content identifier")
	}

	// already a plain URL, pass it through untouched
	if strings.HasPrefix(cid, "http://") || strings.HasPrefix(cid, "https://") {
		return cid, nil
	}

	if len(r.gateways) == 0 {
		return "", errors.New("no ipfs gateways configured")
	}

	cid = strings.TrimPrefix(cid, "ipfs://")
	cid = strings.TrimPrefix(cid, "/ipfs/")

	gateway := r.gateways[int(atomic.AddUint32(&r.next, 1))%len(r.gateways)]
	return fmt.Sprintf("https://%s/ipfs/%s", gateway, cid), nil
}
