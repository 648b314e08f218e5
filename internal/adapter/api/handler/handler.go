package handler

import (
	"complainhub/internal/usecase"
)

var (
	authHandler      *AuthHandler
	userHandler      *UserHandler
	complaintHandler *ComplaintHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	complaintUseCase *usecase.ComplaintUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase, authUseCase)
	complaintHandler = NewComplaintHandler(complaintUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetComplaintHandler() *ComplaintHandler {
	return complaintHandler
}
