package blogservice

import (
	"github.com/sushihentaime/contenthub/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.MaxLength(title, 255), "title", "must not be more than 255 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}

func validateLabel(v *common.Validator, value, field string) {
	v.Check(v.MaxLength(value, 100), field, "must not be more than 100 characters long")
}

func validateTags(v *common.Validator, tags []string) {
	v.Check(len(tags) <= 50, "tags", "must not contain more than 50 entries")
	for _, tag := range tags {
		if !v.MaxLength(tag, 100) {
			v.AddError("tags", "must not contain entries longer than 100 characters")
			return
		}
	}
}

func validateImage(v *common.Validator, image string) {
	v.Check(v.MaxLength(image, 500), "image", "must not be more than 500 characters long")
}

func validateBlogInput(v *common.Validator, in *BlogInput) {
	validateTitle(v, in.Title)
	validateContent(v, in.Content)
	validateLabel(v, in.Author, "author")
	validateLabel(v, in.Category, "category")
	validateLabel(v, in.Date, "date")
	validateTags(v, in.Tags)
}
