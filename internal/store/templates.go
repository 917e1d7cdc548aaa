package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ayutaki/kiroku/internal/kvstore"
	"github.com/ayutaki/kiroku/internal/logger"
	"github.com/ayutaki/kiroku/models"
)

const templatesKey = "diary_templates"

// Templates stores entry presets locally. Same fail-soft contract as the
// outbox: corrupt storage reads as an empty list.
type Templates struct {
	kv  kvstore.Store
	log *logger.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewTemplates returns a template store persisted in kv.
func NewTemplates(kv kvstore.Store, log *logger.Logger) *Templates {
	return &Templates{kv: kv, log: log, now: time.Now}
}

// List returns all stored templates.
func (t *Templates) List() []models.Template {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.read()
}

// Save assigns tpl an id and creation time, appends it, and returns it.
func (t *Templates) Save(tpl models.Template) models.Template {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	tpl.ID = fmt.Sprintf("%d", now.UnixMilli())
	tpl.CreatedAt = now
	t.write(append(t.read(), tpl))
	return tpl
}

// Delete removes the template with the given id, if present.
func (t *Templates) Delete(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	templates := t.read()
	next := templates[:0:0]
	for _, tpl := range templates {
		if tpl.ID != id {
			next = append(next, tpl)
		}
	}
	t.write(next)
}

func (t *Templates) read() []models.Template {
	raw, ok, err := t.kv.Get(templatesKey)
	if err != nil {
		t.log.Warn().Err(err).Msg("templates read failed, treating as empty")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var templates []models.Template
	if err = json.Unmarshal([]byte(raw), &templates); err != nil {
		t.log.Warn().Err(err).Msg("templates are corrupt, treating as empty")
		return nil
	}
	return templates
}

func (t *Templates) write(templates []models.Template) {
	if templates == nil {
		templates = []models.Template{}
	}
	payload, err := json.Marshal(templates)
	if err != nil {
		t.log.Error().Err(err).Msg("templates encode failed")
		return
	}
	if err = t.kv.Set(templatesKey, string(payload)); err != nil {
		t.log.Error().Err(err).Msg("templates write failed")
	}
}
