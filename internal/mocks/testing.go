package mocks

import "github.com/stretchr/testify/mock"

type constructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}
