// Package repository provides data access layer implementations for the application.
package repository

import (
	"gorm.io/gorm"
)

const maxPerPage = 100

// Paginate counts the rows matched by q, then loads the requested page into
// dest in primary-key order. It returns the total row count and the number of
// pages (ceil(total/perPage)). An out-of-range page yields an empty dest and
// no error.
func Paginate(q *gorm.DB, page, perPage int, dest any) (int64, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}

	err := q.Order("id").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(dest).Error
	if err != nil {
		return 0, 0, err
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return total, pages, nil
}
