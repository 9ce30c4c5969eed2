// Package dummydb provides in-memory repositories substituting the real store
// in tests.
package dummydb

import (
	"sync"

	"github.com/trezcool/alama/core/course"
	"github.com/trezcool/alama/core/grade"
	"github.com/trezcool/alama/core/student"
)

type (
	DB struct {
		student *studentTable
		course  *courseTable
		grade   *gradeTable
	}

	studentTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*student.Student
	}

	courseTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*course.Course
	}

	gradeTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*grade.Grade
	}
)

func Open() (*DB, error) {
	db := &DB{
		student: &studentTable{table: make(map[int]*student.Student)},
		course:  &courseTable{table: make(map[int]*course.Course)},
		grade:   &gradeTable{table: make(map[int]*grade.Grade)},
	}
	return db, nil
}
