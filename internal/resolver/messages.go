package resolver

import "strings"

// PromptMessage is returned for an empty question.
const PromptMessage = "Please provide a query about Indian law."

// UnavailableMessage is returned when the upstream API cannot answer.
const UnavailableMessage = `<h3>Information Temporarily Unavailable</h3>

I'm currently unable to retrieve specific information about your legal query.

<b>For accurate legal information in India, please consider:</b>

1. Consulting a practicing advocate
2. Visiting official websites:
   - India Code (indiacode.nic.in) for legislation
   - Indian Kanoon (indiankanoon.org) for case laws
   - e-Courts (ecourts.gov.in) for case status
3. Contacting legal aid services through NALSA

<i>Disclaimer: This information is for educational purposes only and does not constitute legal advice.</i>`

// DisclaimerMarker identifies an answer that already carries a disclaimer.
const DisclaimerMarker = "<i>Disclaimer:"

// DisclaimerSuffix is appended to generated answers lacking a disclaimer.
const DisclaimerSuffix = `
<br><br>
<i>Disclaimer: This information is provided for educational purposes only and does not constitute legal advice. For specific legal issues, please consult a qualified lawyer.</i>`

// WithDisclaimer appends DisclaimerSuffix unless answer already contains DisclaimerMarker.
func WithDisclaimer(answer string) string {
	if strings.Contains(answer, DisclaimerMarker) {
		return answer
	}
	return answer + DisclaimerSuffix
}

// RateLimitedMessage answers a question refused by the per-client rate limit.
const RateLimitedMessage = `<h3>Too Many Questions</h3>

You have sent a lot of questions in a short time. Please wait a minute and try again.`
