package presentation

import (
	"rentdash/config"
	"rentdash/internal/dataset"
	"rentdash/internal/models"
	"rentdash/internal/pipeline"
)

// Dashboard is everything one page render needs.
type Dashboard struct {
	Title         string              `json:"title"`
	Subtitles     []string            `json:"subtitles"`
	SidebarHeader string              `json:"sidebar_header"`
	CityPrompt    string              `json:"city_prompt"`
	SummaryHeader string              `json:"summary_header"`
	TableHeader   string              `json:"table_header"`
	Cities        []string            `json:"cities"`
	Selected      string              `json:"selected"`
	Summary       models.SummaryStats `json:"summary"`
	SummaryLines  []string            `json:"summary_lines"`
	Table         Table               `json:"table"`
	Charts        []Chart             `json:"charts"`
}

// Build runs filter, aggregation and projection once over ds. tableLimit caps the
// rows of the embedded table page; <= 0 embeds every filtered row.
func Build(ds *dataset.Dataset, criterion models.FilterCriterion, tableLimit int) (*Dashboard, error) {
	view := pipeline.Filter(ds, criterion)

	charts, err := Charts(view)
	if err != nil {
		return nil, err
	}

	var cities []string
	if ds != nil {
		cities = config.GetCityNames(ds)
	} else {
		cities = []string{models.AllCitiesSelection}
	}

	stats := pipeline.Summarize(view)
	return &Dashboard{
		Title:         PageTitle,
		Subtitles:     append([]string(nil), Subtitles...),
		SidebarHeader: SidebarHeader,
		CityPrompt:    CityPrompt,
		SummaryHeader: SummaryHeader,
		TableHeader:   TableHeader,
		Cities:        cities,
		Selected:      criterion.Label(),
		Summary:       stats,
		SummaryLines:  SummaryLines(stats),
		Table:         BuildTable(view, 0, tableLimit),
		Charts:        charts,
	}, nil
}
