package model

// Tag identifies the semantic block type the classifier assigns to a paragraph
type Tag string

const (
	TagCourtHeader      Tag = "court_header"      // "SUPREME COURT OF THE STATE OF NEW YORK"
	TagCountyLine       Tag = "county_line"       // "COUNTY OF NEW YORK"
	TagCaptionSeparator Tag = "caption_separator" // Divider row inside a caption table
	TagCaptionParty     Tag = "caption_party"     // Named party in the caption
	TagCaptionRole      Tag = "caption_role"      // Bare role label ("Defendant,")
	TagVersusLine       Tag = "versus_line"       // "-against-"
	TagDocTitle         Tag = "doc_title"         // "NOTICE OF CLAIM", "VERIFIED COMPLAINT"
	TagNoticeToLine     Tag = "notice_to_line"    // "TO: ..." addressee line
	TagMatterOfLine     Tag = "matter_of_line"    // "In the Matter of the Claim of..."
	TagJuratBlock       Tag = "jurat_block"       // "STATE OF NEW YORK ) ss.:"
	TagDamagesHeading   Tag = "damages_heading"   // "TOTAL DAMAGES ALLEGED:"
	TagListIntro        Tag = "list_intro"        // "Attached hereto is:"
	TagBulletItem       Tag = "bullet_item"       // "- medical records"
	TagDatingLine       Tag = "dating_line"       // "Dated: November 2, 2025"
	TagPhoneFaxLine     Tag = "phone_fax_line"    // "P: (212) 555-0100"
	TagEmailLine        Tag = "email_line"        // "counsel@firm.com"
	TagFirmBlockLine    Tag = "firm_block_line"   // "SMITH & JONES, P.C."
	TagSectionHeading   Tag = "section_heading"   // Residual all-caps heading
	TagCauseHeading     Tag = "cause_of_action_heading"
	TagCauseTitle       Tag = "cause_of_action_title"
	TagBodyParagraph    Tag = "body_paragraph"
	TagLegalAllegation  Tag = "legal_allegation" // "That on ... defendant negligently ..."
	TagNumberedPara     Tag = "numbered_paragraph"
	TagWherefore        Tag = "wherefore_clause"
	TagSignatureLine    Tag = "signature_line" // Underscore rule awaiting a signature
	TagSignatureBlock   Tag = "signature_block"
	TagVerifHeading     Tag = "verification_heading"
	TagVerifBody        Tag = "verification_body"
	TagSummonsBody      Tag = "summons_body"
	TagLine             Tag = "line"  // Horizontal rule, rendered as-is
	TagEmpty            Tag = "empty" // Preserved blank paragraph, dropped at projection
)

// StyleKey names an entry in a caller-supplied StyleTable
type StyleKey string

const (
	KeyHeading       StyleKey = "heading"
	KeySectionHeader StyleKey = "section_header"
	KeyParagraph     StyleKey = "paragraph"
	KeyNumbered      StyleKey = "numbered"
	KeyWherefore     StyleKey = "wherefore"
)

// Sentinel style names returned without consulting any style table
const (
	StyleLine          = "line"
	StyleSignatureLine = "signature_line"
)

// TagSpec is one row of the ontology: a tag paired with either a style-table
// key or a fixed sentinel style, never both
type TagSpec struct {
	Tag      Tag      `json:"tag"`
	Key      StyleKey `json:"key,omitempty"`      // Style-table key; empty for sentinel tags
	Sentinel string   `json:"sentinel,omitempty"` // Fixed style bypassing the table; empty otherwise
}

// ontology is the single mapping from tags to layout intent. Every tag the
// classifier can emit has exactly one row here; resolution never falls back.
var ontology = []TagSpec{
	{Tag: TagCourtHeader, Key: KeyHeading},
	{Tag: TagCountyLine, Key: KeyHeading},
	{Tag: TagCaptionSeparator, Key: KeyParagraph},
	{Tag: TagCaptionParty, Key: KeyHeading},
	{Tag: TagCaptionRole, Key: KeyHeading},
	{Tag: TagVersusLine, Key: KeyParagraph},
	{Tag: TagDocTitle, Key: KeySectionHeader},
	{Tag: TagNoticeToLine, Key: KeySectionHeader},
	{Tag: TagMatterOfLine, Key: KeyHeading},
	{Tag: TagJuratBlock, Key: KeyParagraph},
	{Tag: TagDamagesHeading, Key: KeySectionHeader},
	{Tag: TagListIntro, Key: KeyParagraph},
	{Tag: TagBulletItem, Key: KeyNumbered},
	{Tag: TagDatingLine, Key: KeyParagraph},
	{Tag: TagPhoneFaxLine, Key: KeyParagraph},
	{Tag: TagEmailLine, Key: KeyParagraph},
	{Tag: TagFirmBlockLine, Key: KeyParagraph},
	{Tag: TagSectionHeading, Key: KeySectionHeader},
	{Tag: TagCauseHeading, Key: KeySectionHeader},
	{Tag: TagCauseTitle, Key: KeySectionHeader},
	{Tag: TagBodyParagraph, Key: KeyParagraph},
	{Tag: TagLegalAllegation, Key: KeyNumbered},
	{Tag: TagNumberedPara, Key: KeyNumbered},
	{Tag: TagWherefore, Key: KeyWherefore},
	{Tag: TagSignatureLine, Sentinel: StyleSignatureLine},
	{Tag: TagSignatureBlock, Key: KeyParagraph},
	{Tag: TagVerifHeading, Key: KeySectionHeader},
	{Tag: TagVerifBody, Key: KeyParagraph},
	{Tag: TagSummonsBody, Key: KeyParagraph},
	{Tag: TagLine, Sentinel: StyleLine},
	{Tag: TagEmpty, Key: KeyParagraph},
}

var specByTag = buildSpecIndex()

func buildSpecIndex() map[Tag]TagSpec {
	m := make(map[Tag]TagSpec, len(ontology))
	for _, s := range ontology {
		m[s.Tag] = s
	}
	return m
}

// Ontology returns every tag row in declaration order
func Ontology() []TagSpec {
	out := make([]TagSpec, len(ontology))
	copy(out, ontology)
	return out
}

// LookupTag returns the ontology row for t
func LookupTag(t Tag) (TagSpec, bool) {
	s, ok := specByTag[t]
	return s, ok
}

// KnownTag reports whether t is a member of the ontology
func KnownTag(t Tag) bool {
	_, ok := specByTag[t]
	return ok
}

// Tags returns every ontology tag in declaration order
func Tags() []Tag {
	out := make([]Tag, len(ontology))
	for i, s := range ontology {
		out[i] = s.Tag
	}
	return out
}
