package content

import (
	"html/template"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ivmanto/site/internal/lazy"
)

// staticServices is the service catalogue. Lookup maps are built from it once
// by NewRegistry.
var staticServices = []Service{
	{
		ID:        "data-architecture",
		MenuTitle: "Data Architecture",
		Title:     "Cloud Data Architecture",
		Summary:   "Designing scalable, secure, and cost-effective data platforms on GCP.",
		Icon:      `<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M8 9l4-4 4 4m0 6l-4 4-4-4" />`,
		Details:   "We specialize in building robust data architectures using Google Cloud services like #BigQuery, #GCS, and #CloudSQL. Our designs prioritize performance, security, and cost-efficiency to provide a solid foundation for your data initiatives.",
		TagDetails: map[string]string{
			"BigQuery": "Google's fully-managed, petabyte-scale, and cost-effective analytics data warehouse that lets you run analytics over vast amounts of data in near real time.",
			"GCS":      "Google Cloud Storage (GCS) is a unified object storage for developers and enterprises, from live data serving to data analytics/ML to data archiving.",
			"CloudSQL": "Cloud SQL is a fully-managed database service that makes it easy to set up, maintain, manage, and administer your relational PostgreSQL, MySQL, and SQL Server databases in the cloud.",
		},
		Industries: []string{"Finance", "Retail", "Healthcare"},
	},
	{
		ID:        "ml-engineering",
		MenuTitle: "ML Engineering",
		Title:     "ML Engineering & MLOps",
		Summary:   "Operationalizing machine learning models from prototype to production.",
		Icon:      `<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M14 10l-2 1m0 0l-2-1m2 1v2.5M20 7l-2 1m2-1l-2-1m2 1v2.5M14 4l-2-1-2 1M4 7l2 1M4 7l2-1M4 7v2.5M12 21l-2-1m2 1l-2 1m2-1v-2.5M6 18l-2-1m2 1l-2 1m2-1V15M2 4h20M2 11h20M2 18h20" />`,
		Details:   "Our MLOps services streamline the machine learning lifecycle. We use #VertexAI to build automated #CICD pipelines for model training, deployment, and monitoring, ensuring your models deliver continuous value.",
		TagDetails: map[string]string{
			"VertexAI": "A unified AI platform that helps you build, deploy, and scale ML models faster, with pre-trained and custom tooling within a single platform.",
			"CICD":     "Continuous Integration and Continuous Delivery (CI/CD) is a method to frequently deliver apps to customers by introducing automation into the stages of app development.",
		},
		Industries: []string{"Retail", "Healthcare"},
	},
	{
		ID:        "data-governance",
		MenuTitle: "Data Governance",
		Title:     "Data Governance & Strategy",
		Summary:   "Implementing DAMA-aligned principles for data quality and security.",
		Icon:      `<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M9 12l2 2 4-4m5.618-4.016A11.955 11.955 0 0112 2.944a11.955 11.955 0 01-8.618 3.04A12.02 12.02 0 003 9c0 5.591 3.824 10.29 9 11.622 5.176-1.332 9-6.03 9-11.622 0-1.042-.133-2.052-.382-3.016z" />`,
		Details:   "We help you establish a strong data governance framework based on #DAMA principles. This ensures your data is accurate, consistent, and secure, transforming it into a trustworthy asset for decision-making.",
		TagDetails: map[string]string{
			"DAMA": "The DAMA-DMBOK (Data Management Body of Knowledge) is a framework of data management best practices, often used as a study guide for data management certification.",
		},
		Industries: []string{"Finance", "Healthcare"},
	},
	{
		ID:         "sovereigncloud",
		Title:      "Sovereign Cloud Solutions",
		Summary:    "Architectural perspectives on data, operations, and AI sovereignty.",
		Icon:       `<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M12 11c0 3.517-1.009 6.799-2.753 9.571m-3.44-2.04l.054-.09A13.916 13.916 0 008 11a4 4 0 118 0c0 1.017-.07 2.019-.203 3m-2.118 6.844A21.88 21.88 0 0015.171 17m3.839 1.132c.645-2.266.99-4.659.99-7.132A8 8 0 008 4.07M3 15.364c.64-1.319 1-2.8 1-4.364 0-1.457.39-2.823 1.07-4" />`,
		Details:    "We design landing zones that keep keys, data residency and operations under your control, using #EKM and #AssuredWorkloads where regulation demands it.",
		TagDetails: map[string]string{
			"EKM":              "Cloud External Key Manager lets you keep encryption keys in a key management system outside Google Cloud.",
			"AssuredWorkloads": "Assured Workloads enforces data residency and personnel controls for regulated workloads on Google Cloud.",
		},
		Industries: []string{"Public Sector", "Finance"},
	},
	{
		ID:         "principles",
		MenuTitle:  "Guiding Principles",
		Title:      "Our Guiding Principles",
		Summary:    "DAMA-aligned principles for strategy, governance, and architecture.",
		Icon:       `<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M12 6.253v13m0-13C10.832 5.477 9.246 5 7.5 5S4.168 5.477 3 6.253v13C4.168 18.477 5.754 18 7.5 18s3.332.477 4.5 1.253m0-13C13.168 5.477 14.754 5 16.5 5c1.747 0 3.332.477 4.5 1.253v13C19.832 18.477 18.247 18 16.5 18c-1.746 0-3.332.477-4.5 1.253" />`,
		Details:    "Every engagement follows the same principles: data is an asset with an owner, quality is measured, and architecture serves decisions. They are rooted in #DAMA and applied pragmatically.",
		TagDetails: map[string]string{
			"DAMA": "The DAMA-DMBOK (Data Management Body of Knowledge) is a framework of data management best practices, often used as a study guide for data management certification.",
		},
		Industries: []string{"All"},
	},
}

var tagPattern = regexp.MustCompile(`#([A-Za-z0-9]+)`)

// renderDetails turns a service description into HTML, marking every #Tag
// as a glossary term carrying its definition when one is known.
func renderDetails(details string, tags map[string]string) template.HTML {
	var b strings.Builder
	last := 0
	for _, m := range tagPattern.FindAllStringSubmatchIndex(details, -1) {
		b.WriteString(template.HTMLEscapeString(details[last:m[0]]))
		tag := details[m[2]:m[3]]
		if def, ok := tags[tag]; ok {
			b.WriteString(`<abbr class="tag" title="`)
			b.WriteString(template.HTMLEscapeString(def))
			b.WriteString(`">`)
			b.WriteString(template.HTMLEscapeString(tag))
			b.WriteString(`</abbr>`)
		} else {
			b.WriteString(`<span class="tag">`)
			b.WriteString(template.HTMLEscapeString(tag))
			b.WriteString(`</span>`)
		}
		last = m[1]
	}
	b.WriteString(template.HTMLEscapeString(details[last:]))
	return template.HTML(b.String())
}

// TitleFromSlug turns "dama-principles" into "Dama Principles".
func TitleFromSlug(slug string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

func prepareService(s Service) Service {
	if s.MenuTitle == "" {
		s.MenuTitle = TitleFromSlug(s.ID)
	}
	details, tags := s.Details, s.TagDetails
	s.DetailsView = lazy.New(func() (template.HTML, error) {
		return renderDetails(details, tags), nil
	})
	return s
}
