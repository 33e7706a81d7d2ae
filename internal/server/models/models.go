package models

import sm "userdesk/internal/shared/models"

type (
	User          = sm.User
	UserInput     = sm.UserInput
	UserEvent     = sm.UserEvent
	UserEventType = sm.UserEventType
	ErrorResponse = sm.ErrorResponse
)

const (
	UserEventCreate = sm.UserEventCreate
	UserEventDelete = sm.UserEventDelete
)
