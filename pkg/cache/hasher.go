package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"mcfsolver/internal/mcf"
	"mcfsolver/pkg/domain"
)

// JobHash computes a deterministic hash of a job's structure (stations,
// links, demand, settings) for use as a cache key. Two jobs built from the
// same description hash identically regardless of map iteration order.
func JobHash(job *domain.Job) string {
	if job == nil {
		return ""
	}
	data := jobToCanonical(job)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

func jobToCanonical(job *domain.Job) []byte {
	settings := job.Settings()

	type edgeData struct {
		from, to                   mcf.NodeID
		distance, capacity, demand uint64
	}
	all := job.AllEdges()
	edges := make([]edgeData, 0, len(all))
	for key, e := range all {
		edges = append(edges, edgeData{key.From, key.To, e.Distance, e.Capacity, e.Demand})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].to < edges[j].to
	})

	var buf []byte
	buf = append(buf, []byte(fmt.Sprintf("n:%d;a:%d;s:%d;", job.Size(), settings.Accuracy, settings.MaxSaturation))...)
	for _, e := range edges {
		buf = append(buf, []byte(fmt.Sprintf("e:%d:%d:%d:%d:%d;", e.from, e.to, e.distance, e.capacity, e.demand))...)
	}
	return buf
}

// BuildSolveKey builds the cache key for a job's solve result.
func BuildSolveKey(jobHash string) string {
	return fmt.Sprintf("solve:%s", jobHash)
}

// QuickHash is a general-purpose hash for arbitrary byte payloads, such as a
// raw job description file before it is parsed.
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash is QuickHash truncated to 16 hex characters.
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}
