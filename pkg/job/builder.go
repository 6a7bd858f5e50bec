package job

import (
	"time"

	"github.com/google/uuid"

	"mcfsolver/internal/mcf"
	"mcfsolver/pkg/cache"
	"mcfsolver/pkg/domain"
)

// Record is a loaded job bundled with the identity cmd/mcfsolve and
// pkg/store need to address it: a random run ID, and a structural hash of
// its stations/links/demand/settings so an unchanged job re-solved later is
// a cache hit rather than a re-run of both passes.
type Record struct {
	ID          uuid.UUID
	Hash        string
	Description *Description
	Job         *domain.Job
	LoadedAt    time.Time
}

// Build validates desc and constructs the domain.Job it describes. The
// returned error is an *apperror.Error wrapping the first validation
// failure encountered; callers that want every failure at once should run
// Validate directly.
func Build(desc *Description) (*domain.Job, error) {
	v := Validate(desc)
	if v.HasErrors() {
		first := v.Errors[0]
		return nil, first.WithDetails("error_count", len(v.Errors))
	}

	stations := make([]mcf.StationID, len(desc.Stations))
	for i, s := range desc.Stations {
		stations[i] = mcf.StationID(s)
	}

	settings := mcf.Settings{
		Accuracy:      desc.Settings.Accuracy,
		MaxSaturation: desc.Settings.MaxSaturation,
	}

	j := domain.New(stations, settings)

	index := make(map[string]mcf.NodeID, len(desc.Stations))
	for i, s := range desc.Stations {
		index[s] = mcf.NodeID(i)
	}

	for _, l := range desc.Links {
		j.AddEdge(index[l.From], index[l.To], l.Distance, l.Capacity, l.Demand)
	}
	for _, d := range desc.Demands {
		from, to := index[d.From], index[d.To]
		if j.HasEdge(from, to) {
			j.AddEdge(from, to, j.EdgeDistance(from, to), j.EdgeCapacity(from, to), d.Amount)
			continue
		}
		j.AddDemand(from, to, d.Amount)
	}

	return j, nil
}

// NewRecord builds desc into a Record: a fresh UUID, the built domain.Job,
// and its structural hash.
func NewRecord(desc *Description) (*Record, error) {
	built, err := Build(desc)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:          uuid.New(),
		Hash:        cache.JobHash(built),
		Description: desc,
		Job:         built,
		LoadedAt:    time.Now(),
	}, nil
}

// LoadRecord loads a job description from path and builds it into a Record.
func LoadRecord(path string) (*Record, error) {
	desc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewRecord(desc)
}
