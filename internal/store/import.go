package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/w0uf/rangetrainer/internal/hands"
	"github.com/w0uf/rangetrainer/internal/ranges"
)

// situationDoc is the JSON shape accepted by ImportJSON. Hands may be
// listed individually or written in range notation ("TT+", "A5s-A2s").
type situationDoc struct {
	Name          string     `json:"name"`
	DisplayName   string     `json:"display_name"`
	TableFormat   string     `json:"table_format"`
	HeroPosition  string     `json:"hero_position"`
	VsPosition    string     `json:"vs_position"`
	StackDepth    string     `json:"stack_depth"`
	PrimaryAction string     `json:"primary_action"`
	Opener        string     `json:"opener"`
	Callers       []string   `json:"callers"`
	Limpers       []string   `json:"limpers"`
	Ranges        []rangeDoc `json:"ranges"`
}

type rangeDoc struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Hands    []string `json:"hands"`
	Notation string   `json:"notation"`
}

// ImportJSON reads a JSON array of situations and stores each one,
// replacing situations with the same name. It returns the number of
// situations imported.
func (s *Store) ImportJSON(ctx context.Context, r io.Reader) (int, error) {
	var docs []situationDoc
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return 0, fmt.Errorf("decode situations: %w", err)
	}

	n := 0
	for _, doc := range docs {
		sit, err := doc.toSituation()
		if err != nil {
			return n, fmt.Errorf("situation %q: %w", doc.Name, err)
		}
		if _, err := s.SaveSituation(ctx, sit); err != nil {
			return n, fmt.Errorf("situation %q: %w", doc.Name, err)
		}
		n++
	}
	s.logger.Info("imported situations", "count", n)
	return n, nil
}

func (d situationDoc) toSituation() (*ranges.Situation, error) {
	sit := &ranges.Situation{
		Name:          d.Name,
		DisplayName:   d.DisplayName,
		TableFormat:   d.TableFormat,
		HeroPosition:  d.HeroPosition,
		VsPosition:    d.VsPosition,
		StackDepth:    d.StackDepth,
		PrimaryAction: d.PrimaryAction,
	}
	if sit.DisplayName == "" {
		sit.DisplayName = d.Name
	}
	if d.Opener != "" || len(d.Callers) > 0 || len(d.Limpers) > 0 {
		sit.Sequence = &ranges.ActionSequence{
			Opener:  d.Opener,
			Callers: d.Callers,
			Limpers: d.Limpers,
		}
	}
	for _, rd := range d.Ranges {
		set := make(hands.Set)
		if rd.Notation != "" {
			parsed, err := hands.ParseRange(rd.Notation)
			if err != nil {
				return nil, fmt.Errorf("range %s: %w", rd.Key, err)
			}
			set = parsed
		}
		for _, raw := range rd.Hands {
			h, err := hands.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("range %s: %w", rd.Key, err)
			}
			set[h] = true
		}
		sit.Ranges = append(sit.Ranges, ranges.Range{
			Key:   rd.Key,
			Name:  rd.Name,
			Label: ranges.Label(rd.Label),
			Hands: set,
		})
	}
	return sit, nil
}
