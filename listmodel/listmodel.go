// Package listmodel holds the ordered row collection the featured view binds to
package listmodel

import (
	"sync"

	"discover/models"

	"github.com/samber/lo"
)

// ListModel is the accessor contract the featured operations work through.
// The caller owns the collection; operations never keep a reference to it.
type ListModel interface {
	Count() int
	Get(index int) models.Row
	Set(index int, row models.Row)
	Append(row models.Row)
}

// Model is an in-memory ListModel that is safe for concurrent use
type Model struct {
	sync.RWMutex
	rows []models.Row
}

func New(rows ...models.Row) *Model {
	m := &Model{}
	for _, row := range rows {
		m.rows = append(m.rows, cloneRow(row))
	}
	return m
}

func (m *Model) Count() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.rows)
}

// Get returns a copy of the row at index. It panics if index is out of range,
// like slice indexing.
func (m *Model) Get(index int) models.Row {
	m.RLock()
	defer m.RUnlock()
	return cloneRow(m.rows[index])
}

// Set replaces the row at index wholesale
func (m *Model) Set(index int, row models.Row) {
	m.Lock()
	defer m.Unlock()
	m.rows[index] = cloneRow(row)
}

func (m *Model) Append(row models.Row) {
	m.Lock()
	defer m.Unlock()
	m.rows = append(m.rows, cloneRow(row))
}

// Replace swaps in a new set of rows in one step
func (m *Model) Replace(rows []models.Row) {
	m.Lock()
	defer m.Unlock()
	m.rows = lo.Map(rows, func(row models.Row, _ int) models.Row {
		return cloneRow(row)
	})
}

// Rows returns a snapshot of all rows
func (m *Model) Rows() []models.Row {
	m.RLock()
	defer m.RUnlock()
	return lo.Map(m.rows, func(row models.Row, _ int) models.Row {
		return cloneRow(row)
	})
}

// cloneRow copies the image pointer so callers cannot mutate stored rows
func cloneRow(row models.Row) models.Row {
	if row.Image != nil {
		row.Image = models.StringPtr(*row.Image)
	}
	return row
}

var _ ListModel = (*Model)(nil)
