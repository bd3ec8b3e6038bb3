// Package seo resolves the <title> and meta description of a page from its
// route path.
package seo

import "strings"

// Metadata is the SEO tuple rendered into the page head.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Default is used for every path without an entry of its own.
var Default = Metadata{
	Title:       "ivmanto.com | Data & AI Consultancy",
	Description: "Expert Data & AI consultancy specializing in Google Cloud Platform (GCP). We help businesses with data architecture, governance, and AI-driven solutions to turn data into a strategic asset.",
}

var routeMetadata = map[string]Metadata{
	"/": Default,
	"/services": {
		Title:       "Services | ivmanto.com",
		Description: "Explore our Data & AI services. From data strategy and GCP architecture to custom AI/ML solutions and Go backend development, we empower your business with data.",
	},
	"/services/data-governance": {
		Title:       "Data Strategy & Governance | ivmanto.com",
		Description: "Develop a clear data strategy and robust governance framework. We align your data initiatives with business goals for maximum impact and compliance.",
	},
	"/services/data-architecture": {
		Title:       "Data Architecture on GCP | ivmanto.com",
		Description: "Design and build scalable, secure data architectures on Google Cloud Platform (GCP). We leverage BigQuery, Cloud Storage, and modern data engineering practices.",
	},
	"/services/sovereigncloud": {
		Title:       "Sovereign Cloud Solutions | ivmanto.com",
		Description: "Explore architectural perspectives on Data, Operations, and AI Sovereignty to meet your compliance and security needs in the cloud.",
	},
	"/services/ml-engineering": {
		Title:       "AI & ML Solutions | ivmanto.com",
		Description: "Leverage the power of AI and Machine Learning on GCP. We build custom solutions, from predictive analytics to generative AI, to solve your toughest challenges.",
	},
	"/services/principles": {
		Title:       "Guiding Principles | ivmanto.com",
		Description: "Our DAMA-aligned principles for data strategy, governance, and architecture ensure your data becomes a reliable, valuable asset for decision-making and AI.",
	},
	"/blog": {
		Title:       "Insights & Articles | ivmanto.com",
		Description: "Read our latest articles and insights on data strategy, cloud architecture, AI/ML, and software engineering. Stay ahead of the curve with expert analysis.",
	},
	"/about": {
		Title:       "About | ivmanto.com",
		Description: "Learn about IVMANTO and our mission to help businesses harness the power of data. Meet the experts behind our innovative data and AI solutions.",
	},
	"/booking": {
		Title:       "Contact us | ivmanto.com",
		Description: "Get in touch with IVMANTO to discuss your data and AI challenges. Book a free consultation or send us a message to start your data transformation journey.",
	},
	"/privacy-policy": {
		Title:       "Privacy Policy | ivmanto.com",
		Description: "Read the IVMANTO Privacy Policy to understand how we collect, use, and protect your personal data in accordance with GDPR and other regulations.",
	},
}

// Resolve returns the metadata registered for path, or Default. A trailing
// slash is not significant.
func Resolve(path string) Metadata {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	if m, ok := routeMetadata[path]; ok {
		return m
	}
	return Default
}

// CleanTitle strips the " | site" suffix from a title.
func CleanTitle(title string) string {
	head, _, _ := strings.Cut(title, " | ")
	return head
}
