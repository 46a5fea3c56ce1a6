package dataset

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Aggregator fans a school search out to all five sources concurrently and
// joins the results. A source that fails, times out or returns a malformed
// payload contributes an empty collection; it can never abort a sibling fetch
// or the aggregate call itself.
type Aggregator struct {
	client *Client
	log    zerolog.Logger
}

// NewAggregator creates an aggregator over the given datastore client.
func NewAggregator(client *Client, log zerolog.Logger) *Aggregator {
	return &Aggregator{client: client, log: log}
}

// Aggregate runs the five fetches and assembles the envelope once all have
// settled. It is total over its input domain: it never returns an error.
func (a *Aggregator) Aggregate(ctx context.Context, query Query) Result {
	result := Result{
		Schools:   []School{},
		CCAs:      []CCA{},
		DistProgs: []DistrictProgramme{},
		Subjects:  []Subject{},
		MOEProgs:  []MOEProgramme{},
	}

	var wg sync.WaitGroup
	wg.Add(5)

	// Each goroutine owns exactly one field of result, so no lock is needed.
	go func() {
		defer wg.Done()
		schools, err := fetchSchools(ctx, a.client, query)
		if err != nil {
			a.logFailure("schools", err)
			return
		}
		result.Schools = schools
	}()

	go func() {
		defer wg.Done()
		ccas, err := fetchCCAs(ctx, a.client, query.Name)
		if err != nil {
			a.logFailure("ccas", err)
			return
		}
		result.CCAs = ccas
	}()

	go func() {
		defer wg.Done()
		progs, err := fetchDistProgs(ctx, a.client, query.Name)
		if err != nil {
			a.logFailure("district_programmes", err)
			return
		}
		result.DistProgs = progs
	}()

	go func() {
		defer wg.Done()
		progs, err := fetchMOEProgs(ctx, a.client, query.Name)
		if err != nil {
			a.logFailure("moe_programmes", err)
			return
		}
		result.MOEProgs = progs
	}()

	go func() {
		defer wg.Done()
		subjects, err := fetchSubjects(ctx, a.client, query.Name)
		if err != nil {
			a.logFailure("subjects", err)
			return
		}
		result.Subjects = subjects
	}()

	wg.Wait()
	return result
}

func (a *Aggregator) logFailure(source string, err error) {
	a.log.Error().Err(err).Str("source", source).Msg("dataset fetch failed")
}
