package entity

import (
	"time"
)

// Константы уникальных индексов сертификатов (используются при разборе 23505)
const (
	CertificateUserCourseIndex = "idx_certificate_user_course"
	CertificateCodeIndex       = "idx_certificate_code"
)

// CertificateCodeLength - длина человекочитаемого кода сертификата
const CertificateCodeLength = 10

// Certificate представляет выданный сертификат об окончании курса.
// Не более одного на пару (user, course); после создания не изменяется.
type Certificate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_certificate_user_course" json:"user_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_certificate_user_course" json:"course_id"`
	Code      string    `gorm:"column:certificate_code;size:32;not null;uniqueIndex:idx_certificate_code" json:"certificate_code"`
	IssuedAt  time.Time `gorm:"not null" json:"issued_at"`
	Course    *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Certificate) TableName() string {
	return "certificates"
}
