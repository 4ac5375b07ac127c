// Package render рисует недельное расписание учителя в PNG.
package render

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image/color"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/schedule"
	"github.com/fogleman/gg"
	"github.com/google/uuid"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth       = 1200
	imageHeight      = 800
	headerHeight     = 90
	leftLabelsWidth  = 70
	legendWidth      = 160
	dayPaddingX      = 6
	minLessonHeight  = 14.0
	lessonRadius     = 5.0
	shadowOffset     = 3.0
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 8
	defaultMaxHour   = 17
	maxLegendEntries = 12
)

// Цветовая схема
var (
	bgColor         = color.RGBA{245, 246, 248, 255}
	textColor       = color.RGBA{80, 85, 90, 255}
	hourLabelColor  = color.RGBA{110, 115, 120, 255}
	hourLineColor   = color.NRGBA{150, 150, 150, 255}
	evenDayColor    = color.NRGBA{240, 240, 240, 255}
	oddDayColor     = color.NRGBA{225, 225, 225, 255}
	lessonTextColor = color.RGBA{20, 24, 28, 255}
	shadowColor     = color.RGBA{0, 0, 0, 20}

	// палитра предметов, цвет выбирается по хешу id
	subjectPalette = []color.RGBA{
		{133, 193, 85, 255},
		{110, 168, 230, 255},
		{255, 182, 193, 255},
		{250, 200, 95, 255},
		{180, 150, 220, 255},
		{120, 205, 190, 255},
		{240, 140, 110, 255},
		{200, 200, 120, 255},
	}
)

var dayLabels = map[model.Weekday]string{
	model.Monday:    "Mon",
	model.Tuesday:   "Tue",
	model.Wednesday: "Wed",
	model.Thursday:  "Thu",
	model.Friday:    "Fri",
	model.Saturday:  "Sat",
}

// hourRange диапазон часов на сетке
type hourRange struct {
	start int
	end   int
	total int
}

// Timetable рисует расписание учителя, дни с понедельника по субботу
func Timetable(tt *model.Timetable) ([]byte, error) {
	days := len(model.Weekdays)
	hours := calculateHourRange(tt)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / days
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, tt)
	drawHourLabels(dc, hours, cellHeight)
	for i, day := range tt.Days {
		if i >= days {
			break
		}
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i)
		drawDayHeader(dc, day.Weekday, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, lesson := range day.Lessons {
			drawLesson(dc, lesson, x, y, dayWidth, hours, cellHeight)
		}
	}
	drawLegend(dc, tt, dayWidth*days)

	return encodeImage(dc)
}

// calculateHourRange определяет часы, покрывающие все уроки
func calculateHourRange(tt *model.Timetable) hourRange {
	minHour, maxHour := 24, 0
	for _, day := range tt.Days {
		for _, lesson := range day.Lessons {
			interval, err := schedule.SlotInterval(&lesson.ScheduleSlot)
			if err != nil {
				continue
			}
			startH := interval.Start / 60
			endH := (interval.End + 59) / 60
			if startH < minHour {
				minHour = startH
			}
			if endH > maxHour {
				maxHour = endH
			}
		}
	}

	if minHour == 24 {
		minHour, maxHour = defaultMinHour, defaultMaxHour
	}

	start := max(minHour-hourPaddingTop, 0)
	end := min(maxHour+hourPaddingBot, 24)
	return hourRange{start: start, end: end, total: end - start}
}

// createCanvas создаёт контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	return dc
}

// drawHeader рисует заголовок с именем учителя и числом уроков
func drawHeader(dc *gg.Context, tt *model.Timetable) {
	title := "Timetable"
	if tt.Teacher != nil {
		title = fmt.Sprintf("%s: %s", title, tt.Teacher.FullName)
	}
	title = fmt.Sprintf("%s (%d lessons)", title, tt.LessonCount())

	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(leftLabelsWidth), float64(headerHeight)/4, 0, 0.5)
}

// drawHourLabels рисует колонку часов слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for i := 0; i <= hours.total; i++ {
		y := float64(headerHeight) + float64(i)*cellHeight
		dc.DrawStringAnchored(schedule.FormatTime((hours.start+i)*60), float64(leftLabelsWidth)-8, y, 1, 0.5)
	}
}

// drawDayBackground рисует фон колонки дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int) {
	if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует название дня над колонкой
func drawDayHeader(dc *gg.Context, day model.Weekday, x, y float64, dayWidth int) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(dayLabels[day], x+float64(dayWidth)/2, y-12, 0.5, 0)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for i := 0; i <= hours.total; i++ {
		hy := y + float64(i)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawLesson рисует один урок
func drawLesson(dc *gg.Context, lesson model.Lesson, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	interval, err := schedule.SlotInterval(&lesson.ScheduleSlot)
	if err != nil {
		return
	}

	startHour := float64(interval.Start) / 60.0
	endHour := float64(interval.End) / 60.0
	lessonY := y + (startHour-float64(hours.start))*cellHeight
	height := max((endHour-startHour)*cellHeight, minLessonHeight)
	width := float64(dayWidth) - float64(dayPaddingX*2)
	fill := subjectColor(lesson.SubjectID)

	dc.SetColor(shadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, lessonY+1+shadowOffset, width, height-2, lessonRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x+dayPaddingX, lessonY+1, width, height-2, lessonRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+dayPaddingX, lessonY+1, width, height-2, lessonRadius)
	dc.Stroke()

	dc.SetColor(lessonTextColor)
	txtX := x + dayPaddingX + 6
	dc.DrawStringAnchored(lesson.StartTime+"-"+lesson.EndTime, txtX, lessonY+13, 0, 0)

	if height > 30 {
		label := lesson.SubjectCode
		if lesson.Room != nil {
			label += " " + *lesson.Room
		}
		dc.DrawStringAnchored(truncate(label, 18), txtX, lessonY+27, 0, 0)
	}
}

// drawLegend рисует справа коды предметов с их цветами
func drawLegend(dc *gg.Context, tt *model.Timetable, gridWidth int) {
	legendX := float64(leftLabelsWidth + gridWidth + 12)
	legendY := float64(headerHeight)

	seen := map[uuid.UUID]bool{}
	for _, day := range tt.Days {
		for _, lesson := range day.Lessons {
			if seen[lesson.SubjectID] || len(seen) >= maxLegendEntries {
				continue
			}
			seen[lesson.SubjectID] = true

			dc.SetColor(subjectColor(lesson.SubjectID))
			dc.DrawRoundedRectangle(legendX, legendY, 18, 12, 3)
			dc.Fill()

			dc.SetColor(textColor)
			dc.DrawStringAnchored(truncate(lesson.SubjectCode, 16), legendX+26, legendY+6, 0, 0.5)
			legendY += 24
		}
	}
}

// subjectColor стабильный цвет предмета
func subjectColor(id uuid.UUID) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write(id[:])
	return subjectPalette[h.Sum32()%uint32(len(subjectPalette))]
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
