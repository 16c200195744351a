package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/caselith/lexfmt/internal/model"
	"github.com/caselith/lexfmt/internal/segment"
)

// Rule is one entry of the classification chain: a name for diagnostics and
// a predicate that may claim a paragraph. Rules run in order; the first to
// claim a paragraph wins, so the position of a rule is part of its meaning.
type Rule struct {
	Name     string
	Classify func(text string) (model.Tag, bool)
}

// DefaultRules returns the classification chain in evaluation order. The
// terminal "body" rule claims everything, so the chain is total.
func DefaultRules() []Rule {
	return []Rule{
		{"empty", classifyEmpty},
		{"separator", classifySeparator},
		{"court-header", classifyCourtHeader},
		{"county-line", classifyCountyLine},
		{"versus-line", classifyVersusLine},
		{"wherefore", classifyWherefore},
		{"party-allegation", classifyPartyAllegation},
		{"caption-party", classifyCaptionParty},
		{"doc-title", classifyDocTitle},
		{"notice-to", classifyNoticeTo},
		{"matter-of", classifyMatterOf},
		{"jurat", classifyJurat},
		{"damages-heading", classifyDamagesHeading},
		{"claim-point", classifyClaimPoint},
		{"list-intro", classifyListIntro},
		{"bullet-item", classifyBulletItem},
		{"dating-line", classifyDatingLine},
		{"phone-fax", classifyPhoneFax},
		{"email", classifyEmail},
		{"address", classifyAddress},
		{"firm-block", classifyFirmBlock},
		{"cause-heading", classifyCauseHeading},
		{"verification-heading", classifyVerificationHeading},
		{"section-heading", classifySectionHeading},
		{"allegation", classifyAllegation},
		{"numbered", classifyNumbered},
		{"signature-line", classifySignatureLine},
		{"signature-block", classifySignatureBlock},
		{"verification-body", classifyVerificationBody},
		{"summons-body", classifySummonsBody},
		{"body", classifyBody},
	}
}

// reCapsLine matches caption-style lines: uppercase letters, digits and light
// punctuation only, at least four characters
var reCapsLine = regexp.MustCompile(`^[A-Z0-9\s\-.,]{4,}$`)

// reRoleLabel matches a bare role label such as "Defendant," or "Plaintiff."
var reRoleLabel = regexp.MustCompile(`(?i)^(plaintiff|defendant|petitioner|respondent|claimant),?\.?$`)

// rePartyAllegation matches allegation sentences that open with a role noun,
// e.g. "Respondent, its agents and employees ..."
var rePartyAllegation = regexp.MustCompile(`(?i)^(respondent|defendant|plaintiff),?\s+its\s+(agents|employees)`)

// reNegligenceVocab marks sentences about conduct rather than caption entries
var reNegligenceVocab = regexp.MustCompile(`(?i)\b(agents|servants|employees|negligent|careless|maintenance|inspection)\b`)

var (
	reMatterOfClaim = regexp.MustCompile(`(?i)^in the matter of the claim of:?$`)
	reMatterOf      = regexp.MustCompile(`(?i)^in the matter of\b`)

	reStateCountyParen = regexp.MustCompile(`^(STATE|COUNTY)\s+OF\s+[A-Z\s]+\)`)
	reCapsParen        = regexp.MustCompile(`^[A-Z\s]+\)\s*$`)

	reDamagesNumbered = regexp.MustCompile(`(?i)^\d+\.\s+the damages`)
	reLeadingNumber   = regexp.MustCompile(`^\d+[.)]\s*`)
	reListIntro       = regexp.MustCompile(`(?i)^attached (hereto|herein|herewith) is:?$`)
	reBullet          = regexp.MustCompile(`^[-•]\s+`)
	reDated           = regexp.MustCompile(`(?i)^dated\s*:`)
	reMonthBlank      = regexp.MustCompile(`(?i)^(january|february|march|april|may|june|july|august|september|october|november|december)\s+_{2,}`)
	rePhonePrefix     = regexp.MustCompile(`(?i)^(p|f|tel|fax|phone)\s*:`)
	rePhoneDigits     = regexp.MustCompile(`^[\d\-().\s]+$`)
	reStreetLine      = regexp.MustCompile(`^\d+\s+[A-Za-z\s]+(Turnpike|Street|Avenue|Boulevard|Road|Drive|Lane),?\s*$`)
	reCityStateZip    = regexp.MustCompile(`(?i)^[A-Za-z\s]+,\s*(New York|NY)\s+\d{5}`)
	reNumbered        = regexp.MustCompile(`^\d+[.)]\s`)
	reAttorneyOpener  = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+,?\s+an?\s+attorney`)
)

// reAllegationOpener matches the stock openers of pleading allegations
var reAllegationOpener = regexp.MustCompile(`(?i)^(that (on|at|the|defendant)|by reason of|as a result|at all times|plaintiff repeats|upon information|it is alleged that|respondent,? its agents|all respondent had|management, maintenance|the injuries sustained|due to the (dangerous|negligent))`)

// partyNouns are matched case-sensitively: capitalized role nouns mark
// caption entries, while lowercase uses inside sentences stay body text
var partyNouns = []string{"Plaintiff", "Defendant", "Petitioner", "Respondent", "Claimant"}

var titleKeywords = []string{"SUMMONS", "COMPLAINT", "NOTICE OF CLAIM", "NOTICE OF", "VERIFIED", "MOTION", "DEMAND"}

// claimPointPhrases are the enumerated points a notice of claim must state
var claimPointPhrases = []string{
	"the name and post-office address",
	"the nature of the claim",
	"the time when, the place where",
	"the items of damage or injuries",
}

func classifyEmpty(text string) (model.Tag, bool) {
	if text == "" {
		return model.TagEmpty, true
	}
	return "", false
}

func classifySeparator(text string) (model.Tag, bool) {
	if segment.IsSeparatorRule(text) {
		return model.TagLine, true
	}
	return "", false
}

func classifyCourtHeader(text string) (model.Tag, bool) {
	if reCapsLine.MatchString(text) && strings.Contains(text, "COURT") {
		return model.TagCourtHeader, true
	}
	return "", false
}

func classifyCountyLine(text string) (model.Tag, bool) {
	if !reCapsLine.MatchString(text) {
		return "", false
	}
	if strings.Contains(text, "COUNTY") || strings.Contains(text, "DISTRICT") || strings.Contains(text, "JURISDICTION") {
		return model.TagCountyLine, true
	}
	return "", false
}

func classifyVersusLine(text string) (model.Tag, bool) {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "-against-") {
		return model.TagVersusLine, true
	}
	// Spaced or typo-ed variants: short line, "against", at least two dashes
	if len(text) < 20 && strings.Contains(lower, "against") && strings.Count(text, "-") >= 2 {
		return model.TagVersusLine, true
	}
	return "", false
}

func classifyWherefore(text string) (model.Tag, bool) {
	if strings.HasPrefix(strings.ToUpper(text), "WHEREFORE") {
		return model.TagWherefore, true
	}
	return "", false
}

func classifyPartyAllegation(text string) (model.Tag, bool) {
	if rePartyAllegation.MatchString(text) {
		return model.TagLegalAllegation, true
	}
	return "", false
}

func classifyCaptionParty(text string) (model.Tag, bool) {
	found := false
	for _, noun := range partyNouns {
		if strings.Contains(text, noun) {
			found = true
			break
		}
	}
	if !found {
		return "", false
	}
	if strings.HasSuffix(text, ",") || strings.HasSuffix(text, ".") || len(text) < 60 {
		if reRoleLabel.MatchString(text) {
			return model.TagCaptionRole, true
		}
		return model.TagCaptionParty, true
	}
	// Longer lines still count when they read like a caption entry rather
	// than an allegation about conduct
	if len(text) < 80 && !reNegligenceVocab.MatchString(text) {
		return model.TagCaptionParty, true
	}
	return "", false
}

func classifyDocTitle(text string) (model.Tag, bool) {
	if !isAllUpper(text) || wordCount(text) > 12 || len(text) >= 80 {
		return "", false
	}
	for _, kw := range titleKeywords {
		if strings.Contains(text, kw) {
			return model.TagDocTitle, true
		}
	}
	if !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, ":") {
		return model.TagDocTitle, true
	}
	return "", false
}

func classifyNoticeTo(text string) (model.Tag, bool) {
	upper := strings.ToUpper(text)
	if strings.HasPrefix(upper, "TO:") || strings.HasPrefix(upper, "TO THE") {
		return model.TagNoticeToLine, true
	}
	return "", false
}

func classifyMatterOf(text string) (model.Tag, bool) {
	if reMatterOfClaim.MatchString(text) {
		return model.TagMatterOfLine, true
	}
	if reMatterOf.MatchString(text) && len(text) < 60 {
		return model.TagMatterOfLine, true
	}
	return "", false
}

func classifyJurat(text string) (model.Tag, bool) {
	upper := strings.ToUpper(text)
	hasLocus := strings.Contains(upper, "STATE OF") || strings.Contains(upper, "COUNTY OF")
	if strings.Contains(text, "ss.") && strings.Contains(text, ")") && hasLocus {
		return model.TagJuratBlock, true
	}
	if reStateCountyParen.MatchString(text) {
		return model.TagJuratBlock, true
	}
	if reCapsParen.MatchString(text) && hasLocus {
		return model.TagJuratBlock, true
	}
	return "", false
}

func classifyDamagesHeading(text string) (model.Tag, bool) {
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "TOTAL DAMAGES ALLEGED") {
		return model.TagDamagesHeading, true
	}
	if strings.Contains(upper, "DAMAGES") && strings.Contains(upper, "INJURIES SUSTAINED") && strings.HasSuffix(text, ":") {
		return model.TagDamagesHeading, true
	}
	if reDamagesNumbered.MatchString(text) {
		return model.TagDamagesHeading, true
	}
	return "", false
}

func classifyClaimPoint(text string) (model.Tag, bool) {
	rest := strings.ToLower(reLeadingNumber.ReplaceAllString(text, ""))
	for _, phrase := range claimPointPhrases {
		if strings.HasPrefix(rest, phrase) {
			return model.TagNumberedPara, true
		}
	}
	return "", false
}

func classifyListIntro(text string) (model.Tag, bool) {
	if reListIntro.MatchString(text) {
		return model.TagListIntro, true
	}
	if strings.HasSuffix(text, ":") && strings.Contains(strings.ToLower(text), "attached") && len(text) < 50 {
		return model.TagListIntro, true
	}
	return "", false
}

func classifyBulletItem(text string) (model.Tag, bool) {
	if reBullet.MatchString(text) {
		return model.TagBulletItem, true
	}
	if strings.HasPrefix(text, "-") && len(text) > 2 {
		return model.TagBulletItem, true
	}
	return "", false
}

func classifyDatingLine(text string) (model.Tag, bool) {
	if reDated.MatchString(text) || reMonthBlank.MatchString(text) {
		return model.TagDatingLine, true
	}
	return "", false
}

func classifyPhoneFax(text string) (model.Tag, bool) {
	if rePhonePrefix.MatchString(text) {
		return model.TagPhoneFaxLine, true
	}
	if len(text) < 50 && rePhoneDigits.MatchString(text) && countDigits(text) >= 7 {
		return model.TagPhoneFaxLine, true
	}
	return "", false
}

func classifyEmail(text string) (model.Tag, bool) {
	if !strings.Contains(text, "@") {
		return "", false
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "email") || strings.Contains(lower, ".com") || strings.Contains(lower, ".org") {
		return model.TagEmailLine, true
	}
	return "", false
}

func classifyAddress(text string) (model.Tag, bool) {
	if reStreetLine.MatchString(text) || reCityStateZip.MatchString(text) {
		return model.TagBodyParagraph, true
	}
	return "", false
}

func classifyFirmBlock(text string) (model.Tag, bool) {
	if !isAllUpper(text) || len(text) >= 60 || strings.HasSuffix(text, ":") {
		return "", false
	}
	if strings.Contains(text, ",") || strings.Contains(text, "LLC") || strings.Contains(text, "P.C.") || strings.Contains(text, "PLLC") {
		return model.TagFirmBlockLine, true
	}
	return "", false
}

func classifyCauseHeading(text string) (model.Tag, bool) {
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "AS AND FOR") || strings.Contains(upper, "CAUSE OF ACTION") {
		return model.TagCauseHeading, true
	}
	return "", false
}

func classifyVerificationHeading(text string) (model.Tag, bool) {
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "VERIFICATION") || strings.Contains(upper, "AFFIDAVIT") || strings.Contains(upper, "JURAT") {
		return model.TagVerifHeading, true
	}
	return "", false
}

func classifySectionHeading(text string) (model.Tag, bool) {
	if !isAllUpper(text) || wordCount(text) > 15 || strings.HasSuffix(text, ".") {
		return "", false
	}
	if strings.HasSuffix(text, ":") || len(text) < 50 {
		return model.TagSectionHeading, true
	}
	return "", false
}

func classifyAllegation(text string) (model.Tag, bool) {
	if reAllegationOpener.MatchString(text) {
		return model.TagLegalAllegation, true
	}
	return "", false
}

func classifyNumbered(text string) (model.Tag, bool) {
	if reNumbered.MatchString(text) {
		return model.TagNumberedPara, true
	}
	return "", false
}

func classifySignatureLine(text string) (model.Tag, bool) {
	if segment.IsUnderscoreRule(text) {
		return model.TagSignatureLine, true
	}
	return "", false
}

func classifySignatureBlock(text string) (model.Tag, bool) {
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "ESQ") {
		return model.TagSignatureBlock, true
	}
	if strings.Contains(upper, "ATTORNEYS FOR") || strings.Contains(upper, "ATTORNEY FOR") {
		return model.TagSignatureBlock, true
	}
	return "", false
}

func classifyVerificationBody(text string) (model.Tag, bool) {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "penalty of perjury") || strings.Contains(lower, "penalties of perjury") || strings.Contains(lower, "duly sworn") {
		return model.TagVerifBody, true
	}
	if reAttorneyOpener.MatchString(text) {
		return model.TagVerifBody, true
	}
	return "", false
}

func classifySummonsBody(text string) (model.Tag, bool) {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "you are hereby summoned") || strings.Contains(lower, "you are hereby directed") {
		return model.TagSummonsBody, true
	}
	return "", false
}

func classifyBody(text string) (model.Tag, bool) {
	return model.TagBodyParagraph, true
}

// isAllUpper reports whether text has at least one letter and no lowercase
// letters, the sense in which a caption line is "all caps"
func isAllUpper(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func countDigits(text string) int {
	n := 0
	for _, r := range text {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
