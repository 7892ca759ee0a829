package domain

import "strings"

// DefaultChecklistCategory is used when an item is added without a category.
const DefaultChecklistCategory = "General"

type ChecklistItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Category    string `json:"category"`
}

func NewChecklistItem(title, description, category string) (ChecklistItem, error) {
	if strings.TrimSpace(title) == "" {
		return ChecklistItem{}, required("title", "a task title")
	}
	return ChecklistItem{
		ID:          NewID("task"),
		Title:       title,
		Description: description,
		Category:    CoalesceStr(category, DefaultChecklistCategory),
	}, nil
}

type Checklist []ChecklistItem

func (c Checklist) Add(it ChecklistItem) Checklist {
	return append(c, it)
}

func (c Checklist) Remove(id string) (Checklist, error) {
	out, ok := removeByID(c, id, func(it ChecklistItem) string { return it.ID })
	if !ok {
		return c, ErrItemNotFound
	}
	return out, nil
}

// Toggle flips the completed flag of one item and returns its new state.
func (c Checklist) Toggle(id string) (bool, error) {
	for i := range c {
		if c[i].ID == id {
			c[i].Completed = !c[i].Completed
			return c[i].Completed, nil
		}
	}
	return false, ErrItemNotFound
}

// Progress returns completed and total counts.
func (c Checklist) Progress() (done, total int) {
	for _, it := range c {
		if it.Completed {
			done++
		}
	}
	return done, len(c)
}
