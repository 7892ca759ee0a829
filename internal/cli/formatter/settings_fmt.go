package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planforge/internal/domain"
)

// FormatAssets lists the brand library with decoded sizes.
func FormatAssets(a domain.Assets) string {
	if len(a) == 0 {
		return Header("Brand Assets") + "\n\n" + Dim("No assets yet. Add one with: planforge assets add logo.png")
	}
	rows := make([][]string, len(a))
	for i, it := range a {
		mime, data, err := domain.DecodeDataURL(it.DataURL)
		size := Dim("?")
		if err == nil {
			size = Bytes(int64(len(data)))
		}
		rows[i] = []string{Dim(it.ID), it.Name, string(it.Type), mime, size}
	}
	return Header("Brand Assets") + "\n\n" + RenderAlignedTable(
		[]string{"ID", "NAME", "TYPE", "MEDIA", "SIZE"},
		rows,
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight},
	)
}

// SettingsView is what settings show prints.
type SettingsView struct {
	AI         domain.AISettings
	Theme      domain.Theme
	UsageBytes int64
	QuotaBytes int64
	DBPath     string
}

func FormatSettings(v SettingsView) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Provider:"), Bold(string(v.AI.Provider))))
	if v.AI.Provider.Remote() {
		key := StyleRed.Render("not set")
		if v.AI.APIKey != "" {
			key = v.AI.MaskedKey()
		}
		b.WriteString(fmt.Sprintf("%s   %s\n", Dim("API key:"), key))
	}
	if v.AI.Model != "" {
		b.WriteString(fmt.Sprintf("%s     %s\n", Dim("Model:"), v.AI.Model))
	}
	b.WriteString(fmt.Sprintf("%s     %s\n", Dim("Theme:"), v.Theme))

	usage := Bytes(v.UsageBytes)
	if v.QuotaBytes > 0 {
		pct := float64(v.UsageBytes) / float64(v.QuotaBytes)
		usage = fmt.Sprintf("%s of %s  %s", usage, Bytes(v.QuotaBytes), RenderProgress(pct, 16))
	}
	b.WriteString(fmt.Sprintf("%s   %s\n", Dim("Storage:"), usage))
	b.WriteString(fmt.Sprintf("%s  %s", Dim("Database:"), v.DBPath))
	return RenderBox("Settings", b.String())
}
