package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
)

const maxSearchResults = 50

func (s *ActivityService) indexActivity(ctx context.Context, a *entity.Activity) error {
	if s.ES == nil || s.ESActivitiesIndex == "" {
		return nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: s.ESActivitiesIndex, DocumentID: a.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("activity_id", a.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"status": res.Status(), "activity_id": a.ID}).Warn("es index response error")
		}
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Search runs a full-text query over the teacher's own activities.
// Without a search backend it returns an empty list.
func (s *ActivityService) Search(ctx context.Context, teacherID, q string) ([]entity.Activity, error) {
	if s.ES == nil || s.ESActivitiesIndex == "" || q == "" {
		return []entity.Activity{}, nil
	}
	query := map[string]any{
		"size": maxSearchResults,
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "description", "content"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"teacherId": teacherID},
				},
			},
		},
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESActivitiesIndex),
		s.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.Activity `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Activity, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		// an index created without the keyword mapping can over-match
		if h.Source.TeacherID == teacherID {
			out = append(out, h.Source)
		}
	}
	return out, nil
}
