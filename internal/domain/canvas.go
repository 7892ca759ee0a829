package domain

import (
	"fmt"
	"strings"
)

// Canvas is the Business Model Canvas record: one free-text field per block.
type Canvas struct {
	KeyPartners           string `json:"keyPartners"`
	KeyActivities         string `json:"keyActivities"`
	KeyResources          string `json:"keyResources"`
	ValuePropositions     string `json:"valuePropositions"`
	CustomerRelationships string `json:"customerRelationships"`
	Channels              string `json:"channels"`
	CustomerSegments      string `json:"customerSegments"`
	CostStructure         string `json:"costStructure"`
	RevenueStreams        string `json:"revenueStreams"`
}

// CanvasBlock describes one canvas field: its JSON key and display label.
type CanvasBlock struct {
	Key   string
	Label string
	Hint  string
}

// CanvasBlocks lists the nine blocks in the order the assistant walks them.
var CanvasBlocks = []CanvasBlock{
	{Key: "valuePropositions", Label: "Value Propositions", Hint: "What unique value do you deliver?"},
	{Key: "customerSegments", Label: "Customer Segments", Hint: "Who are your customers?"},
	{Key: "channels", Label: "Channels", Hint: "How do you reach customers?"},
	{Key: "customerRelationships", Label: "Customer Relationships", Hint: "How do you interact with customers?"},
	{Key: "revenueStreams", Label: "Revenue Streams", Hint: "How do you make money?"},
	{Key: "keyResources", Label: "Key Resources", Hint: "What do you need to operate?"},
	{Key: "keyActivities", Label: "Key Activities", Hint: "What do you do?"},
	{Key: "keyPartners", Label: "Key Partners", Hint: "Who helps you?"},
	{Key: "costStructure", Label: "Cost Structure", Hint: "What are your main costs?"},
}

func (c *Canvas) field(key string) *string {
	switch key {
	case "keyPartners":
		return &c.KeyPartners
	case "keyActivities":
		return &c.KeyActivities
	case "keyResources":
		return &c.KeyResources
	case "valuePropositions":
		return &c.ValuePropositions
	case "customerRelationships":
		return &c.CustomerRelationships
	case "channels":
		return &c.Channels
	case "customerSegments":
		return &c.CustomerSegments
	case "costStructure":
		return &c.CostStructure
	case "revenueStreams":
		return &c.RevenueStreams
	}
	return nil
}

// Get returns the value of the block with the given key.
func (c *Canvas) Get(key string) (string, error) {
	p := c.field(key)
	if p == nil {
		return "", fmt.Errorf("unknown canvas block %q", key)
	}
	return *p, nil
}

// Set replaces the value of the block with the given key.
func (c *Canvas) Set(key, value string) error {
	p := c.field(key)
	if p == nil {
		return &ValidationError{Field: key, Message: "unknown canvas block"}
	}
	*p = value
	return nil
}

// Split partitions the blocks into those with non-blank text and those
// without, preserving CanvasBlocks order.
func (c *Canvas) Split() (filled, empty []CanvasBlock) {
	for _, b := range CanvasBlocks {
		v, _ := c.Get(b.Key)
		if strings.TrimSpace(v) != "" {
			filled = append(filled, b)
		} else {
			empty = append(empty, b)
		}
	}
	return filled, empty
}
