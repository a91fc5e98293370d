package domain

import (
	"strconv"
	"strings"

	"github.com/yigit/uniportal/internal/app/models"
)

// CSVColumn names a column and extracts its value from a record
type CSVColumn[T any] struct {
	Header string
	Value  func(T) string
}

// ExportCSV renders a header line followed by one line per record.
// Every value is double-quoted and embedded quotes are doubled, so N records
// always produce N+1 newline-terminated lines.
func ExportCSV[T any](records []T, columns []CSVColumn[T]) string {
	var b strings.Builder
	writeRow := func(values []string) {
		for i, v := range values {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(flattenNewlines(v), `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	writeRow(headers)

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, c := range columns {
			row[i] = c.Value(rec)
		}
		writeRow(row)
	}
	return b.String()
}

// line breaks inside a value would break the one-line-per-record contract
func flattenNewlines(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// CourseColumns is the column set of the admin courses export
var CourseColumns = []CSVColumn[*models.Course]{
	{"Code", func(c *models.Course) string { return c.Code }},
	{"Name", func(c *models.Course) string { return c.Name }},
	{"Professor", func(c *models.Course) string { return c.Professor }},
	{"Level", func(c *models.Course) string { return string(c.Level) }},
	{"Semester", func(c *models.Course) string { return strconv.Itoa(c.Semester) }},
	{"Academic Year", func(c *models.Course) string { return c.AcademicYear }},
	{"Status", func(c *models.Course) string { return string(c.Status) }},
	{"Credits", func(c *models.Course) string { return strconv.Itoa(c.Credits) }},
	{"Cours", func(c *models.Course) string { return yesNo(c.HasCours) }},
	{"TD", func(c *models.Course) string { return yesNo(c.HasTD) }},
	{"TP", func(c *models.Course) string { return yesNo(c.HasTP) }},
	{"Exam", func(c *models.Course) string { return yesNo(c.HasExam) }},
}

// UserColumns is the column set of the admin users export
var UserColumns = []CSVColumn[*models.User]{
	{"Email", func(u *models.User) string { return u.Email }},
	{"Display Name", func(u *models.User) string { return u.DisplayName }},
	{"First Name", func(u *models.User) string { return u.FirstName }},
	{"Last Name", func(u *models.User) string { return u.LastName }},
	{"Phone", func(u *models.User) string { return u.Phone }},
	{"Level", func(u *models.User) string { return string(u.Level) }},
	{"Role", func(u *models.User) string { return string(u.Role) }},
	{"Active", func(u *models.User) string { return yesNo(u.IsActive) }},
	{"Created At", func(u *models.User) string { return u.CreatedAt.Format("2006-01-02") }},
}
