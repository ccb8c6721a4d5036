package services

import "github.com/raghuraavi99/annotation-app/internal/core/domain"

// PHIRules is the fixed rule set of the PHI finder. Each pattern runs
// through the same engine as gazetteer rules. The MRN pattern is
// intentionally broad and overlaps other PHI hits; overlaps are not
// deduplicated.
var PHIRules = []domain.Rule{
	{
		Label: "PHI_DATE",
		Term:  `\b(?:\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2}|(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{2,4})\b`,
	},
	{
		Label: "PHI_PHONE",
		Term:  `\b(?:\+?1[-.\s]?)?(?:\(?\d{3}\)?[-.\s]?)\d{3}[-.\s]?\d{4}\b`,
	},
	{
		Label: "PHI_EMAIL",
		Term:  `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
	},
	{
		Label: "PHI_MRN",
		Term:  `\b(?:MRN[:#]?\s*)?\d{7,}\b`,
	},
}
