package rule

import (
	"errors"

	ruleerrors "go-workforce/internal/rule/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ruleerrors.ErrRuleNotFound
	}
	return err
}
