// Package schemes holds the built-in government scheme catalog used by the
// chatbot when the upstream model is unavailable.
package schemes

import (
	"fmt"
	"strings"
)

type Scheme struct {
	Name        string
	Link        string
	Eligibility string
	Benefits    string
	Steps       []string
}

var catalog = []Scheme{
	{
		Name:        "Pradhan Mantri Jan Dhan Yojana",
		Link:        "https://pmjdy.gov.in",
		Eligibility: "Indian citizens who do not have a bank account.",
		Benefits:    "RuPay card, insurance cover, and Direct Benefit Transfer.",
		Steps: []string{
			"Visit the nearest bank branch.",
			"Fill out the Jan Dhan account opening form.",
			"Submit proof of identity and address.",
			"Receive confirmation of account opening from the bank.",
		},
	},
	{
		Name:        "Pradhan Mantri Awas Yojana",
		Link:        "https://pmaymis.gov.in",
		Eligibility: "Families belonging to EWS/LIG/MIG categories.",
		Benefits:    "Subsidy on building or purchasing a house.",
		Steps: []string{
			"Visit the PMAY website.",
			"Click on 'Citizen Assessment'.",
			"Enter Aadhaar number and fill the form.",
			"Submit the form and note down the application ID.",
		},
	},
	{
		Name:        "Pradhan Mantri Ujjwala Yojana",
		Link:        "https://pmuy.gov.in",
		Eligibility: "Women from BPL families.",
		Benefits:    "Free LPG connection.",
		Steps: []string{
			"Contact the nearest LPG distributor.",
			"Fill out the application form.",
			"Submit Aadhaar, Ration Card, and ID proof.",
			"Receive LPG connection upon approval.",
		},
	},
	{
		Name:        "Pradhan Mantri Kisan Samman Nidhi",
		Link:        "https://pmkisan.gov.in",
		Eligibility: "All small and marginal farmers.",
		Benefits:    "Rs. 6000 annually in 3 installments.",
		Steps: []string{
			"Visit the PM-Kisan website.",
			"Register under 'Farmer Corner'.",
			"Fill in Aadhaar and bank details.",
			"Money will be transferred directly to the account after verification.",
		},
	},
	{
		Name:        "Ayushman Bharat Yojana",
		Link:        "https://pmjay.gov.in",
		Eligibility: "Families below the poverty line.",
		Benefits:    "Free treatment up to Rs. 5 lakhs.",
		Steps: []string{
			"Visit the official PM-JAY portal.",
			"Enter Aadhaar in the 'Am I Eligible' section.",
			"Get the Gold Card if eligible.",
			"Avail free treatment at empanelled hospitals.",
		},
	},
	{
		Name:        "Pradhan Mantri Fasal Bima Yojana",
		Link:        "https://pmfby.gov.in",
		Eligibility: "Farmers growing notified crops in notified areas.",
		Benefits:    "Crop insurance against natural calamities, pests and diseases.",
		Steps: []string{
			"Contact the nearest bank or insurance company.",
			"Fill the crop insurance application form.",
			"Pay the premium share.",
			"Receive the policy document.",
		},
	},
}

// All returns the full catalog.
func All() []Scheme {
	return catalog
}

// Lookup finds the first scheme whose name shares a significant word with the
// query. Matching is loose on purpose: citizens rarely type exact names.
func Lookup(query string) (Scheme, bool) {
	q := strings.ToLower(query)
	for _, s := range catalog {
		if strings.Contains(q, strings.ToLower(s.Name)) {
			return s, true
		}
	}
	for _, s := range catalog {
		for _, word := range strings.Fields(strings.ToLower(s.Name)) {
			// Skip the honorific prefix shared by most schemes.
			if word == "pradhan" || word == "mantri" || word == "yojana" {
				continue
			}
			if strings.Contains(q, word) {
				return s, true
			}
		}
	}
	return Scheme{}, false
}

// FormatReply renders a scheme as the chatbot's plain-text answer.
func FormatReply(s Scheme) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", s.Name)
	fmt.Fprintf(&b, "Eligibility: %s\n", s.Eligibility)
	fmt.Fprintf(&b, "Benefits: %s\n", s.Benefits)
	b.WriteString("How to apply:\n")
	for i, step := range s.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	fmt.Fprintf(&b, "Official website: %s", s.Link)
	return b.String()
}

// FallbackReply lists known schemes when nothing matches the question.
func FallbackReply() string {
	var names []string
	for _, s := range catalog {
		names = append(names, "- "+s.Name)
	}
	return "I can share details about these government schemes:\n" +
		strings.Join(names, "\n") +
		"\nPlease ask about one of them by name."
}
