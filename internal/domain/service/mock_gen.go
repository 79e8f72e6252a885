package service

//go:generate mockgen -destination=../../mocks/notification.go -package=mocks github.com/Badsnus/cu-events/internal/domain/service NotificationStorage
//go:generate mockgen -destination=../../mocks/sender.go -package=mocks github.com/Badsnus/cu-events/internal/domain/service EmailSender,TelegramSender
