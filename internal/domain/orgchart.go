package domain

import (
	"sort"
	"strings"
)

// Role is one position in the org chart. ReportsTo is a free-text label,
// matched against other roles' titles only by the reporting report.
type Role struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Name             string `json:"name"`
	Department       string `json:"department"`
	Responsibilities string `json:"responsibilities"`
	ReportsTo        string `json:"reportsTo"`
	PhotoAssetID     string `json:"photoAssetId,omitempty"`
}

// UnassignedDepartment groups roles saved without a department.
const UnassignedDepartment = "Unassigned"

func NewRole(title, name, department, responsibilities, reportsTo, photoAssetID string) (Role, error) {
	if strings.TrimSpace(title) == "" {
		return Role{}, required("title", "a role title")
	}
	return Role{
		ID:               NewID("role"),
		Title:            title,
		Name:             name,
		Department:       department,
		Responsibilities: responsibilities,
		ReportsTo:        reportsTo,
		PhotoAssetID:     photoAssetID,
	}, nil
}

type OrgChart []Role

func (o OrgChart) Add(r Role) OrgChart {
	return append(o, r)
}

func (o OrgChart) Remove(id string) (OrgChart, error) {
	out, ok := removeByID(o, id, func(r Role) string { return r.ID })
	if !ok {
		return o, ErrItemNotFound
	}
	return out, nil
}

// Department pairs a department name with its roles.
type Department struct {
	Name  string
	Roles []Role
}

// ByDepartment groups roles by department, sorted by name, keeping the
// roles' insertion order inside each group.
func (o OrgChart) ByDepartment() []Department {
	idx := map[string]int{}
	var out []Department
	for _, r := range o {
		name := r.Department
		if name == "" {
			name = UnassignedDepartment
		}
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, Department{Name: name})
		}
		out[i].Roles = append(out[i].Roles, r)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

// Photo resolves the role's photo against the asset collection. A missing
// or dangling reference yields ok == false.
func (r Role) Photo(assets Assets) (BrandAsset, bool) {
	if r.PhotoAssetID == "" {
		return BrandAsset{}, false
	}
	return assets.Find(r.PhotoAssetID)
}

// ReportingIssue describes a reporting label that does not resolve cleanly.
type ReportingIssue struct {
	RoleID string
	Title  string
	Kind   string // "dangling" or "cycle"
	Detail string
}

// ReportingIssues checks reportsTo labels against role titles
// (case-insensitive). It reports labels naming no role and reporting
// chains that loop back on themselves. Nothing here blocks a save.
func (o OrgChart) ReportingIssues() []ReportingIssue {
	byTitle := map[string]Role{}
	for _, r := range o {
		byTitle[strings.ToLower(strings.TrimSpace(r.Title))] = r
	}

	var issues []ReportingIssue
	inCycle := map[string]bool{}
	for _, r := range o {
		label := strings.ToLower(strings.TrimSpace(r.ReportsTo))
		if label == "" {
			continue
		}
		if _, ok := byTitle[label]; !ok {
			issues = append(issues, ReportingIssue{
				RoleID: r.ID, Title: r.Title, Kind: "dangling",
				Detail: "reports to unknown role " + r.ReportsTo,
			})
			continue
		}
		if inCycle[r.ID] {
			continue
		}
		seen := map[string]bool{r.ID: true}
		chain := []string{r.Title}
		cur := r
		for {
			next, ok := byTitle[strings.ToLower(strings.TrimSpace(cur.ReportsTo))]
			if !ok || strings.TrimSpace(cur.ReportsTo) == "" {
				break
			}
			chain = append(chain, next.Title)
			if next.ID == r.ID {
				for _, t := range chain {
					inCycle[byTitle[strings.ToLower(strings.TrimSpace(t))].ID] = true
				}
				issues = append(issues, ReportingIssue{
					RoleID: r.ID, Title: r.Title, Kind: "cycle",
					Detail: strings.Join(chain, " -> "),
				})
				break
			}
			if seen[next.ID] {
				break
			}
			seen[next.ID] = true
			cur = next
		}
	}
	return issues
}
