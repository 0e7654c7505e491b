package generate

import (
	"strings"

	"github.com/hyperifyio/gobrd/internal/brief"
	"github.com/hyperifyio/gobrd/internal/profile"
)

// Bullet text below must not contain any section header keyword, otherwise
// the parser would start a new section in the middle of a body.
type domainText struct {
	objectives    []string
	functional    []string
	nonFunctional []string
	regulatory    []string
}

var fallbackText = map[string]domainText{
	"pharma": {
		objectives: []string{
			"Ensure alignment with Good Clinical Practice (GCP) and regulatory standards.",
			"Streamline clinical trial operations with validated digital workflows.",
			"Enhance pharmacovigilance monitoring and reporting speed.",
		},
		functional: []string{
			"Capture and manage clinical study protocols with role-based approvals.",
			"Track adverse events with automated signal detection and escalation rules.",
			"Integrate with laboratory information systems for real-time data ingestion.",
		},
		nonFunctional: []string{
			"21 CFR Part 11 audit trails for all data changes.",
			"Validated system with documented Installation/Operational Qualification (IQ/OQ).",
			"High availability architecture supporting 99.9% uptime across study phases.",
		},
		regulatory: []string{
			"FDA and EMA submission alignment, including eCTD document structures.",
			"ICH E6 (R3) adherence for clinical quality management.",
			"HIPAA safeguards and GxP controls for patient and trial data.",
		},
	},
	"finance": {
		objectives: []string{
			"Improve transparency for regulatory reporting and internal audits.",
			"Automate credit risk scoring to support lending and market decisions.",
			"Provide customer-facing insights while preserving data privacy controls.",
		},
		functional: []string{
			"Generate regulatory filings with configurable workflows.",
			"Provide real-time exposure dashboards with drill-down analytics.",
			"Estimate probability of default and loss given default for each collateral-backed exposure.",
			"Support Know Your Customer (KYC) onboarding with rule-based verification.",
		},
		nonFunctional: []string{
			"Encryption of data at rest and in transit aligned with FFIEC guidelines.",
			"Support for disaster recovery with Recovery Time Objective (RTO) under 4 hours.",
			"Role-based access controls integrated with enterprise identity providers.",
		},
		regulatory: []string{
			"SOX controls and audit logging for financial transactions.",
			"Basel III capital adequacy and stress testing documentation support.",
			"Adherence to GDPR data privacy requirements for customer information.",
		},
	},
}

var genericText = domainText{
	objectives: []string{
		"Deliver the capabilities described in the request with measurable outcomes.",
		"Reduce manual effort through automated and auditable workflows.",
		"Give business owners timely and accurate reporting.",
	},
	functional: []string{
		"Capture, review and approve business records through configurable workflows.",
		"Provide dashboards and exports for operational reporting.",
		"Integrate with existing enterprise systems through documented interfaces.",
	},
	nonFunctional: []string{
		"Role-based access controls integrated with enterprise identity providers.",
		"Encryption of data at rest and in transit.",
		"High availability architecture supporting 99.9% uptime.",
	},
	regulatory: []string{
		"Audit logging of all data changes.",
		"Data privacy controls for personal information.",
		"Documented change-control governance for regulatory updates.",
	},
}

// Fallback renders a deterministic draft with one heading per required
// section. It is used when no model is configured.
func Fallback(b brief.Brief, p profile.Profile) string {
	text, ok := fallbackText[profile.NormalizeDomain(b.Domain)]
	if !ok {
		text = genericText
	}
	domain := profile.DisplayName(b.Domain)

	var sb strings.Builder
	title := strings.TrimSpace(b.Title)
	if title == "" {
		title = domain + " BRD Draft"
	}
	sb.WriteString("# " + title + "\n\n")
	for _, name := range p.RequiredSections {
		sb.WriteString("## " + name + "\n\n")
		for _, line := range fallbackBody(name, domain, b, text) {
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func fallbackBody(name, domain string, b brief.Brief, text domainText) []string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "overview"):
		lines := []string{
			"This Business Requirements Document was generated from the provided project context. " +
				"It highlights priorities, constraints and regulatory expectations specific to the " + domain + " domain.",
		}
		if d := strings.TrimSpace(b.Description); d != "" {
			lines = append(lines, "Project context summary: "+oneLine(d))
		}
		if a := strings.TrimSpace(b.AdditionalRequirements); a != "" {
			lines = append(lines, "Additional notes: "+oneLine(a))
		}
		return lines
	case strings.Contains(lower, "objective"):
		lines := bullets(text.objectives)
		if o := strings.TrimSpace(b.Objectives); o != "" {
			lines = append([]string{"- " + oneLine(o)}, lines...)
		}
		return lines
	case strings.Contains(lower, "non-functional"):
		return bullets(text.nonFunctional)
	case strings.Contains(lower, "functional"):
		return bullets(text.functional)
	case strings.Contains(lower, "kpi") || strings.Contains(lower, "performance"):
		return bullets([]string{
			"Cycle time from request to approval reduced by 30% within two quarters.",
			"Data quality rules pass rate above 98% on monitored sources.",
			"User adoption above 80% of targeted roles three months after launch.",
			"Zero critical audit findings during the first annual review.",
		})
	case strings.Contains(lower, "risk") || strings.Contains(lower, "compliance"):
		return append(bullets(text.regulatory),
			"- Regulatory change impacting delivery: maintain change-control governance.",
			"- Data integration complexity: allocate technical spikes and sandbox testing.",
			"- User adoption: schedule enablement sessions and a champion network.",
		)
	case strings.Contains(lower, "stakeholder"):
		lines := bullets([]string{
			"Executive Sponsor",
			"Business Owner",
			"Domain Subject Matter Experts",
			"IT Delivery Lead",
			"Quality and Regulatory Officer",
		})
		if s := strings.TrimSpace(b.Stakeholders); s != "" {
			lines = append([]string{"- " + oneLine(s)}, lines...)
		}
		return lines
	case strings.Contains(lower, "scope"):
		return []string{
			"In scope:",
			"- Core capabilities described in the project context.",
			"- Process digitization and user experiences outlined in discovery.",
			"- Regulatory and quality management features essential to the domain.",
			"Out of scope:",
			"- Adjacent initiatives not referenced in the current business case.",
			"- Legacy platform decommissioning beyond agreed integration points.",
		}
	}
	return []string{"Details for " + name + " will be confirmed with the business owner during discovery."}
}

func bullets(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, "- "+it)
	}
	return out
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
