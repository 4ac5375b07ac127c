package handlers

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/Freeeeeet/timetable/internal/controller/bottest"
	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/repository/memory"
	"github.com/Freeeeeet/timetable/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const linkedTelegramID int64 = 42

type fixture struct {
	handlers *Handlers
	db       *memory.DB
	schedule *service.ScheduleService
	server   *bottest.Server
	bot      *bot.Bot
	teacher  *model.Teacher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	db := memory.Open()

	telegramID := linkedTelegramID
	teacher := &model.Teacher{
		ID:         uuid.New(),
		FullName:   "Анна Петрова",
		Email:      "anna@school.test",
		TelegramID: &telegramID,
		IsActive:   true,
	}
	require.NoError(t, db.Teachers().Create(ctx, teacher))

	schedule := service.NewScheduleService(db.Slots(), db.Teachers(), db.Subjects(), logger)
	server, b := bottest.New(t)

	return &fixture{
		handlers: NewHandlers(schedule, logger),
		db:       db,
		schedule: schedule,
		server:   server,
		bot:      b,
		teacher:  teacher,
	}
}

func (f *fixture) addLesson(t *testing.T, subjectName string, day model.Weekday, start, end string) {
	t.Helper()
	ctx := context.Background()

	subject := &model.Subject{ID: uuid.New(), Code: uuid.NewString()[:8], Name: subjectName}
	require.NoError(t, f.db.Subjects().Create(ctx, subject))

	_, err := f.schedule.CreateSlot(ctx, service.CreateSlotInput{
		TeacherID: f.teacher.ID.String(),
		SubjectID: subject.ID.String(),
		Weekday:   string(day),
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
}

func messageUpdate(userID int64) *models.Update {
	return &models.Update{Message: &models.Message{
		ID:   1,
		From: &models.User{ID: userID, FirstName: "Анна"},
		Chat: models.Chat{ID: userID, Type: models.ChatTypePrivate},
	}}
}

func callbackUpdate(userID int64, data string) *models.Update {
	return &models.Update{CallbackQuery: &models.CallbackQuery{
		ID:   "cb-1",
		From: models.User{ID: userID},
		Data: data,
		Message: models.MaybeInaccessibleMessage{
			Type:    models.MaybeInaccessibleMessageTypeMessage,
			Message: &models.Message{ID: 7, Chat: models.Chat{ID: userID, Type: models.ChatTypePrivate}},
		},
	}}
}

func TestHandleMySchedule(t *testing.T) {
	t.Run("linked teacher gets text and image", func(t *testing.T) {
		f := newFixture(t)
		f.addLesson(t, "Математика", model.Monday, "08:00", "09:00")
		f.addLesson(t, "Физика", model.Friday, "10:00", "10:45")

		f.handlers.HandleMySchedule(context.Background(), f.bot, messageUpdate(linkedTelegramID))

		messages := f.server.CallsTo("sendMessage")
		require.Len(t, messages, 1)
		assert.Equal(t, linkedTelegramID, messages[0].ChatID)
		assert.Contains(t, messages[0].Text, "Математика")
		assert.Contains(t, messages[0].Text, "Физика")
		assert.Contains(t, messages[0].ReplyMarkup, "day:FRIDAY")

		photos := f.server.CallsTo("sendPhoto")
		require.Len(t, photos, 1)
		assert.Equal(t, linkedTelegramID, photos[0].ChatID)
		image, err := png.Decode(bytes.NewReader(photos[0].Files["photo"]))
		require.NoError(t, err)
		assert.Positive(t, image.Bounds().Dx())
	})

	t.Run("empty week sends text only", func(t *testing.T) {
		f := newFixture(t)

		f.handlers.HandleMySchedule(context.Background(), f.bot, messageUpdate(linkedTelegramID))

		assert.Len(t, f.server.CallsTo("sendMessage"), 1)
		assert.Empty(t, f.server.CallsTo("sendPhoto"))
	})

	t.Run("unlinked user gets start hint", func(t *testing.T) {
		f := newFixture(t)
		f.addLesson(t, "Математика", model.Monday, "08:00", "09:00")

		f.handlers.HandleMySchedule(context.Background(), f.bot, messageUpdate(7))

		messages := f.server.CallsTo("sendMessage")
		require.Len(t, messages, 1)
		assert.Equal(t, int64(7), messages[0].ChatID)
		assert.Contains(t, messages[0].Text, "не привязан")
		assert.Contains(t, messages[0].Text, "/start")
		assert.Empty(t, f.server.CallsTo("sendPhoto"))
	})

	t.Run("update without message is ignored", func(t *testing.T) {
		f := newFixture(t)

		f.handlers.HandleMySchedule(context.Background(), f.bot, &models.Update{})

		assert.Empty(t, f.server.Calls())
	})
}

func TestHandleDayCallback(t *testing.T) {
	t.Run("sends lessons of the chosen day", func(t *testing.T) {
		f := newFixture(t)
		f.addLesson(t, "Математика", model.Monday, "08:00", "09:00")
		f.addLesson(t, "Физика", model.Friday, "10:00", "10:45")
		f.addLesson(t, "Химия", model.Friday, "11:00", "11:45")

		f.handlers.HandleDayCallback(context.Background(), f.bot, callbackUpdate(linkedTelegramID, "day:FRIDAY"))

		assert.Len(t, f.server.CallsTo("answerCallbackQuery"), 1)
		messages := f.server.CallsTo("sendMessage")
		require.Len(t, messages, 1)
		assert.Equal(t, linkedTelegramID, messages[0].ChatID)
		assert.Contains(t, messages[0].Text, "Пятница")
		assert.Contains(t, messages[0].Text, "Физика")
		assert.Contains(t, messages[0].Text, "Химия")
		assert.NotContains(t, messages[0].Text, "Математика")
	})

	t.Run("free day", func(t *testing.T) {
		f := newFixture(t)
		f.addLesson(t, "Математика", model.Monday, "08:00", "09:00")

		f.handlers.HandleDayCallback(context.Background(), f.bot, callbackUpdate(linkedTelegramID, "day:SATURDAY"))

		messages := f.server.CallsTo("sendMessage")
		require.Len(t, messages, 1)
		assert.Equal(t, "Суббота: уроков нет.", messages[0].Text)
	})

	t.Run("unknown day", func(t *testing.T) {
		f := newFixture(t)

		f.handlers.HandleDayCallback(context.Background(), f.bot, callbackUpdate(linkedTelegramID, "day:SUNDAY"))

		messages := f.server.CallsTo("sendMessage")
		require.Len(t, messages, 1)
		assert.Equal(t, errorMessage(ErrInvalidFormat), messages[0].Text)
	})

	t.Run("unlinked user", func(t *testing.T) {
		f := newFixture(t)

		f.handlers.HandleDayCallback(context.Background(), f.bot, callbackUpdate(7, "day:FRIDAY"))

		messages := f.server.CallsTo("sendMessage")
		require.Len(t, messages, 1)
		assert.Contains(t, messages[0].Text, "не привязан")
	})

	t.Run("inaccessible message replies to user", func(t *testing.T) {
		f := newFixture(t)
		update := callbackUpdate(linkedTelegramID, "day:FRIDAY")
		update.CallbackQuery.Message = models.MaybeInaccessibleMessage{}

		f.handlers.HandleDayCallback(context.Background(), f.bot, update)

		messages := f.server.CallsTo("sendMessage")
		require.Len(t, messages, 1)
		assert.Equal(t, linkedTelegramID, messages[0].ChatID)
		assert.Equal(t, errorMessage(ErrNoMessage), messages[0].Text)
	})
}

func TestHandleStartShowsTelegramID(t *testing.T) {
	f := newFixture(t)

	f.handlers.HandleStart(context.Background(), f.bot, messageUpdate(7))

	messages := f.server.CallsTo("sendMessage")
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "Ваш Telegram ID: 7")
}
