package assistant

import (
	"strings"
)

// Service produces assistant replies by keyword lookup against a fixed
// table. There is no model behind it.
type Service struct {
	fallback string
	rules    []rule
}

type rule struct {
	keywords []string
	reply    string
}

func NewService() *Service {
	return &Service{
		fallback: "I can help with medications, vitals, appointments, lab results, and general health tips. What would you like to know?",
		rules: []rule{
			{
				keywords: []string{"medication", "med"},
				reply:    "You can review today's doses on the medication screen. Remember to mark each dose as taken so your adherence stays accurate.",
			},
			{
				keywords: []string{"vital", "blood pressure"},
				reply:    "Keep a regular log of your vitals and share it with your doctor at your next visit.",
			},
			{
				keywords: []string{"appointment"},
				reply:    "Your upcoming appointments are listed on the appointments screen. You can add notes for your doctor before the visit.",
			},
			{
				keywords: []string{"lab", "result"},
				reply:    "Recent lab results live under medical records, in the lab-results category.",
			},
			{
				keywords: []string{"tip", "advice"},
				reply:    "Stay hydrated, keep consistent sleep hours, and take medications at the same times every day.",
			},
		},
	}
}

// Reply matches the first rule whose keyword occurs in the input,
// case-insensitively. Unmatched input gets the fallback reply.
func (s *Service) Reply(input string) string {
	lowered := strings.ToLower(input)
	for _, r := range s.rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.reply
			}
		}
	}
	return s.fallback
}
