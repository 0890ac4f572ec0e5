// Package prompt assembles the completion-request prompt from the configured
// fragments and the two variable inputs.
package prompt

import (
	"fmt"

	"github.com/jonathan/resume-customizer-cli/internal/config"
)

// template fixes the section ordering of the assembled prompt. Golden tests
// depend on this being byte-stable, so any change here is a breaking change.
const template = `%s

%s

Focus on: %s

IMPORTANT REQUIREMENTS:
- %s
- %s
- %s

OUTPUT FORMAT:
Please return ONLY the complete customized LaTeX resume content. Do not include any explanations, markdown formatting, or additional text outside the LaTeX code.

Here's my current resume:
%s

Here's the job description:
%s

Please provide the customized resume in LaTeX format:`

// Build returns the full prompt for the given resume and job description.
// Pure: identical inputs yield byte-identical output.
func Build(p config.Prompts, resumeText, jobDescription string) string {
	return fmt.Sprintf(template,
		p.Role,
		p.Context,
		p.FocusAreas,
		p.FormatRequirements,
		p.QualityGuidelines,
		p.Approach,
		resumeText,
		jobDescription,
	)
}
