package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/apply-assistant/internal/types"
)

const jsonLDPage = `<html>
<head>
	<title>Careers | Acme</title>
	<meta property="og:title" content="Meta Title">
	<meta name="description" content="Meta description">
	<script type="application/ld+json">{"@context":"https://schema.org","@type":"Organization","name":"Other"}</script>
	<script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@type": "JobPosting",
		"title": "Senior Go Engineer",
		"hiringOrganization": {"@type": "Organization", "name": "Acme Corp"},
		"description": "<p>Build APIs in Go.</p>"
	}
	</script>
</head>
<body>
	<div class="job-description">Selector description</div>
	<span class="company-name">Selector Company</span>
</body>
</html>`

func TestScrape_JSONLDWinsAndStops(t *testing.T) {
	result := New().Scrape(Page{URL: "https://www.example.com/jobs/1", HTML: jsonLDPage})

	assert.Equal(t, types.JobPosting{
		Title:       "Senior Go Engineer",
		Company:     "Acme Corp",
		Description: "<p>Build APIs in Go.</p>",
	}, result.Job)
	assert.Equal(t, "json-ld", result.Sources[FieldTitle])
	assert.Equal(t, "json-ld", result.Sources[FieldDescription])
}

func TestScrape_JSONLDWithEmptyFieldsStillStops(t *testing.T) {
	html := `<html><head><title>Doc Title</title>
	<script type="application/ld+json">{"@type":"JobPosting","title":"Only Title"}</script>
	</head><body><h1>Heading</h1></body></html>`

	job := Scrape(Page{URL: "https://acme.com/jobs", HTML: html})
	assert.Equal(t, types.JobPosting{Title: "Only Title"}, job)
}

func TestJSONLD_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		block   string
		title   string
		company string
	}{
		{
			name:    "top-level array",
			block:   `[{"@type":"WebPage"},{"@type":"JobPosting","title":"Array Job","hiringOrganization":{"name":"Arr Inc"}}]`,
			title:   "Array Job",
			company: "Arr Inc",
		},
		{
			name:    "graph",
			block:   `{"@context":"https://schema.org","@graph":[{"@type":"BreadcrumbList"},{"@type":"JobPosting","title":"Graph Job","hiringOrganization":"Graph LLC"}]}`,
			title:   "Graph Job",
			company: "Graph LLC",
		},
		{
			name:  "type array",
			block: `{"@type":["JobPosting","Thing"],"title":"Typed Job"}`,
			title: "Typed Job",
		},
		{
			name:  "numeric title",
			block: `{"@type":"JobPosting","title":1234}`,
			title: "1234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := `<script type="application/ld+json">` + tt.block + `</script>`
			c := newTestContext(t, "", html)

			JSONLD{}.Extract(c)

			assert.Equal(t, tt.title, c.Job.Title)
			assert.Equal(t, tt.company, c.Job.Company)
			assert.True(t, c.stopped)
		})
	}
}

func TestJSONLD_IgnoresInvalidAndOtherTypes(t *testing.T) {
	html := `<script type="application/ld+json">{not json</script>
	<script type="application/ld+json">{"@type":"Organization","name":"Acme"}</script>`
	c := newTestContext(t, "", html)

	JSONLD{}.Extract(c)

	assert.True(t, c.Job.IsEmpty())
	assert.False(t, c.stopped)
}

func TestScrape_MetaDescriptionKeptOverSelectors(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="Platform Engineer">
		<meta property="og:description" content="Meta says hello">
	</head><body>
		<div class="job-description">Selector says hello</div>
		<div class="company">Initech</div>
	</body></html>`

	result := New().Scrape(Page{URL: "https://careers.initech.com/1", HTML: html})

	assert.Equal(t, "Platform Engineer", result.Job.Title)
	assert.Equal(t, "Meta says hello", result.Job.Description)
	assert.Equal(t, "Initech", result.Job.Company)
	assert.Equal(t, "meta", result.Sources[FieldDescription])
	assert.Equal(t, "company-selectors", result.Sources[FieldCompany])
}

func TestScrape_TitleFallsBackToDocumentTitle(t *testing.T) {
	html := `<html><head><title>
		Backend   Developer - Acme
	</title></head><body><h1>Heading</h1></body></html>`

	job := Scrape(Page{HTML: html})
	assert.Equal(t, "Backend Developer - Acme", job.Title)
}

func TestScrape_SelectorOrderAndEmptyMatches(t *testing.T) {
	html := `<html><body>
		<div class="description">Second choice</div>
		<div class="job-details">   </div>
		<div class="job-details">First non-empty details</div>
		<div class="employer-name">Globex</div>
	</body></html>`

	job := Scrape(Page{URL: "https://www.jobs.example.com/x", HTML: html})
	assert.Equal(t, "First non-empty details", job.Description)
	assert.Equal(t, "Globex", job.Company)
}

func TestScrape_ParagraphFallback(t *testing.T) {
	html := `<html><body>
		<p>Too short.</p>
		<p>  You will design and build reliable backend services.  </p>
		<ul>
			<li>Five years of experience with Go or a similar language</li>
			<li>Short item</li>
			<li>Comfortable operating Postgres in production settings</li>
			<li>This fourth long item should never be included at all</li>
		</ul>
	</body></html>`

	job := Scrape(Page{HTML: html})
	assert.Equal(t,
		"You will design and build reliable backend services. "+
			"Five years of experience with Go or a similar language "+
			"Comfortable operating Postgres in production settings",
		job.Description)
}

func TestScrape_DomainCompanyFallback(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.acme.com/jobs/1", "acme"},
		{"https://jobs.globex.io/apply", "jobs"},
		{"http://localhost:8080/job", "localhost"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			job := Scrape(Page{URL: tt.url, HTML: "<html><body></body></html>"})
			assert.Equal(t, tt.want, job.Company)
		})
	}
}

func TestScrape_HeadingFallback(t *testing.T) {
	html := `<html><body><h1>  </h1><h2>Staff Engineer</h2><h3>Other</h3></body></html>`

	job := Scrape(Page{HTML: html})
	assert.Equal(t, "Staff Engineer", job.Title)
}

func TestScrape_GarbageNeverFails(t *testing.T) {
	for _, html := range []string{"", "not html at all", "<<<>>>", "<html><body><p>"} {
		assert.NotPanics(t, func() {
			Scrape(Page{URL: "https://acme.com", HTML: html})
		})
	}
}

type panicky struct{}

func (panicky) Name() string       { return "panicky" }
func (panicky) Extract(c *Context) { panic("boom") }

func TestScrape_PanickingStrategyIsSkipped(t *testing.T) {
	scraper := New(panicky{}, Headings{})

	result := scraper.Scrape(Page{HTML: "<h1>Still here</h1>"})
	assert.Equal(t, "Still here", result.Job.Title)
}
