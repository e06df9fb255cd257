package contactservice

import (
	"strings"

	"github.com/sushihentaime/contenthub/internal/common"
)

func normalizeInput(in *SubmissionInput) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = common.NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
}

func validateInput(v *common.Validator, in *SubmissionInput) {
	v.Check(in.Name != "", "name", "must be provided")
	v.Check(v.MaxLength(in.Name, 100), "name", "must not be more than 100 characters long")

	common.ValidateEmail(v, in.Email)

	v.Check(v.MaxLength(in.Phone, 50), "phone", "must not be more than 50 characters long")

	v.Check(in.Subject != "", "subject", "must be provided")
	v.Check(v.MaxLength(in.Subject, 255), "subject", "must not be more than 255 characters long")

	v.Check(in.Message != "", "message", "must be provided")
}
