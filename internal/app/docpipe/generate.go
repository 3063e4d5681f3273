package docpipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/lawverra/lawverra-agent/internal/domain"
)

// GenerateInput carries everything the drafting prompt needs. Profile is
// required; the rest is optional and omitted from the prompt when empty.
type GenerateInput struct {
	Title        string
	Notes        string
	DocumentType domain.DocumentType
	AreaOfLaw    domain.AreaOfLaw
	Jurisdiction string
	County       string
	DateOfApp    string
	CaseNumber   string

	Profile *domain.Profile
	Client  *domain.ClientProfile
}

const generateBaseInstructions = `## CORE MANDATE: Exhaustive Detail and Professionalism
You are an AI legal assistant role-playing as a senior partner at a top-tier law firm. Your work is known for being exceptionally thorough, meticulously detailed, and comprehensive. A brief or cursory document is unacceptable.

## GENERAL DRAFTING RULES:
1. **Populate from Profiles**: Use the provided profile information to populate all relevant fields.
2. **Placeholders**: For any other unspecified information, use clear bracketed placeholders like [Name of Opposing Counsel] or [Date of Incident].
3. **Jurisdiction-Specific Compliance**: If a jurisdiction is specified, ensure content, structure and terminology comply with its legal standards.
4. **Incorporate User Notes**: Meticulously integrate all specific requirements from the user's notes.
5. **Professional Tone**: Maintain a formal tone and precise legal terminology throughout.
6. **Markdown Formatting**: Use Markdown for organization. DO NOT wrap the final output in a markdown code block.
`

const filingInstructions = `## DOCUMENT STRUCTURE: COURT FILING (Motion, Petition, Filing, Notice)
1. **Caption**: court name (bold, all caps, using the provided county and jurisdiction), case number, and party blocks with placeholders where names are not provided.
2. **Document Title**: centered below the caption, bold, all caps, descriptive.
3. **Introduction**: a formal "COMES NOW" clause naming the filing party.
4. **Body**: an exhaustive factual background in numbered paragraphs, then a comprehensive legal argument with bolded subheadings per argument, citing (placeholder) statutes, procedural rules and case law, anticipating counter-arguments.
5. **Prayer for Relief**: a "WHEREFORE" clause listing exactly what the court is asked to order.
6. **Signature Block**: "Respectfully submitted," with name, firm, address, contact and bar number.
7. **Certificate of Service** and, for motions, a **Certificate of Good Faith Conference**.
`

const letterInstructions = `## DOCUMENT STRUCTURE: PROFESSIONAL LEGAL LETTER
1. **Letterhead** with the sender's name, firm, address and contact details.
2. **Date**, **recipient block** and an optional method-of-delivery line.
3. **Subject line**, bold and clear.
4. **Body**: state the purpose in the first paragraph, elaborate extensively on the subject matter (factual basis, legal violations, damages where applicable), and close with a clear call to action and response deadline.
5. **Formal closing and signature**.
`

const contractInstructions = `## DOCUMENT STRUCTURE: COMPREHENSIVE LEGAL AGREEMENT
1. **Title** centered, bold, all caps.
2. **Parties block** with effective date and full party identification.
3. **Recitals**: detailed WHEREAS clauses ending in "NOW, THEREFORE".
4. **Body**: an Article I of definitions, then exhaustive articles with decimal-numbered sections covering term, scope, compensation, confidentiality, intellectual property, representations and warranties, indemnification and termination. Elaborate within each section.
5. **Boilerplate**: governing law, dispute resolution, notices, severability, entire agreement, amendment, waiver, force majeure, assignment.
6. **Signature blocks** for all parties under an "IN WITNESS WHEREOF" clause.
`

// instructionsFor selects the structural drafting instructions for a
// document type. Unknown types get the court-filing structure, the most
// conservative default.
func instructionsFor(docType domain.DocumentType) string {
	switch docType {
	case domain.DocTypeLetter:
		return letterInstructions
	case domain.DocTypeContract, domain.DocTypeAgreement:
		return contractInstructions
	default:
		return filingInstructions
	}
}

// Generate drafts a new legal document and returns its markdown content.
func (p *Pipeline) Generate(ctx context.Context, in GenerateInput) (string, error) {
	var sb strings.Builder
	sb.WriteString(generateBaseInstructions)
	sb.WriteString(instructionsFor(in.DocumentType))

	sb.WriteString("\n# Provided Information for this Specific Document:\n")
	sb.WriteString(profileBlock(in.Profile, in.Client))
	fmt.Fprintf(&sb, "Document Type: %s\n", in.DocumentType)
	fmt.Fprintf(&sb, "Area of Law: %s\n", in.AreaOfLaw)
	writeOptional(&sb, "Jurisdiction", in.Jurisdiction)
	writeOptional(&sb, "County", in.County)
	writeOptional(&sb, "Date of Application", in.DateOfApp)
	writeOptional(&sb, "Case Number", in.CaseNumber)

	user := fmt.Sprintf(`Please generate a comprehensive, detailed, and extensive legal document based on the following specifics. Adhere strictly to the rules and persona defined in the system message. The final output must be raw markdown, ready for use.

Document Title: %s

Specific Requirements (Notes):
%s
`, in.Title, in.Notes)

	content, err := p.model.Generate(ctx, sb.String(), user)
	if err != nil {
		return "", fmt.Errorf("generate document: %w", err)
	}
	return content, nil
}

func profileBlock(profile *domain.Profile, client *domain.ClientProfile) string {
	var sb strings.Builder
	sb.WriteString("Your Profile Information:\n")
	fmt.Fprintf(&sb, "Full Name: %s\n", orPlaceholder(profile.FullName, "[Your Full Name]"))
	fmt.Fprintf(&sb, "Address: %s\n", orPlaceholder(profile.Address, "[Your Address]"))
	fmt.Fprintf(&sb, "Phone Number: %s\n", orPlaceholder(profile.PhoneNumber, "[Your Phone Number]"))
	fmt.Fprintf(&sb, "Email: %s\n", orPlaceholder(profile.Email, "[Your Email]"))
	fmt.Fprintf(&sb, "Role: %s\n", orPlaceholder(profile.Role, "[Your Role]"))

	if client != nil {
		sb.WriteString("\nClient Profile Information:\n")
		fmt.Fprintf(&sb, "Full Name: %s\n", orPlaceholder(client.FullName, "[Client Full Name]"))
		fmt.Fprintf(&sb, "Address: %s\n", orPlaceholder(client.Address, "[Client Address]"))
		fmt.Fprintf(&sb, "Phone Number: %s\n", orPlaceholder(client.PhoneNumber, "[Client Phone Number]"))
	}
	return sb.String()
}

func orPlaceholder(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}

func writeOptional(sb *strings.Builder, label, v string) {
	if v != "" {
		fmt.Fprintf(sb, "%s: %s\n", label, v)
	}
}
