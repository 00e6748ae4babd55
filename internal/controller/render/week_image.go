package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/Freeeeeet/pillbot/internal/model"
	"github.com/Freeeeeet/pillbot/internal/schedule"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleRegular FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

// Размеры и отступы
const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 100
	leftLabelsWidth = 80
	legendWidth     = 180
	dayPaddingX     = 8
	markerHeight    = 30.0
	markerRadius    = 6.0
	shadowOffset    = 3.0
	totalDaysInWeek = 7
	hourPaddingTop  = 1
	hourPaddingBot  = 1
	defaultMinHour  = 6
	defaultMaxHour  = 22
	maxLegendItems  = 12
)

// Шрифты
const (
	titleFontSize     = 25.0
	dayFontSize       = 24.0
	hourLabelFontSize = 18.0
	markerFontSize    = 16.0
	legendFontSize    = 13.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 90}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{225, 225, 225, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}
	markerTextColor  = color.RGBA{20, 24, 28, 230}
	markerShadow     = color.RGBA{0, 0, 0, 20}
	legendTextColor  = color.RGBA{70, 74, 78, 220}

	// цвет маркера по номеру alert
	palette = []color.RGBA{
		{133, 193, 85, 220},
		{110, 170, 230, 220},
		{255, 182, 120, 230},
		{200, 150, 220, 220},
		{240, 210, 90, 230},
		{120, 200, 190, 220},
	}
)

// hourRange диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

// marker один приём: alert, день, слот
type marker struct {
	alertIdx int
	time     model.AlertTime
}

var (
	fontsOnce   sync.Once
	parsedFonts map[FontStyle]*opentype.Font
)

// loadFont выставляет шрифт, при ошибке парсинга остаётся basicfont
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsOnce.Do(func() {
		parsedFonts = make(map[FontStyle]*opentype.Font)
		if f, err := opentype.Parse(goregular.TTF); err == nil {
			parsedFonts[FontStyleRegular] = f
		}
		if f, err := opentype.Parse(gobold.TTF); err == nil {
			parsedFonts[FontStyleBold] = f
		}
	})

	parsed, ok := parsedFonts[style]
	if !ok {
		parsed, ok = parsedFonts[FontStyleRegular]
	}
	if ok {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// GenerateWeekImage рисует неделю приёмов: колонки Sunday...Saturday,
// сетка часов, маркер на каждый слот активного alert в выбранные дни.
// now нужен для подсветки сегодняшнего дня и линии текущего времени.
func GenerateWeekImage(alerts []model.Alert, now time.Time) ([]byte, error) {
	byDay := groupByDay(alerts)
	hours := calculateHourRange(byDay)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, countMarkers(byDay))
	drawHourLabels(dc, hours, cellHeight)
	for dayIndex, day := range model.Weekdays {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		isToday := int(now.Weekday()) == dayIndex

		drawDayBackground(dc, x, dayWidth, dayHeight, dayIndex, isToday)
		drawDayHeader(dc, day, x, dayWidth)
		drawHourLines(dc, x, dayWidth, hours, cellHeight)
		for _, m := range byDay[day] {
			drawMarker(dc, m, x, dayWidth, hours, cellHeight)
		}
	}
	drawCurrentTimeLine(dc, now, hours, cellHeight, dayWidth)
	drawLegend(dc, alerts, dayWidth)

	return encodeImage(dc)
}

// groupByDay раскладывает слоты активных alerts по дням, внутри дня по времени
func groupByDay(alerts []model.Alert) map[model.Weekday][]marker {
	byDay := make(map[model.Weekday][]marker)
	for i, a := range alerts {
		if !a.IsActive {
			continue
		}
		for _, day := range schedule.SortedDays(a.DaysOfWeek) {
			for _, t := range a.AlertTimes {
				if !schedule.ValidTime(t) {
					continue
				}
				byDay[day] = append(byDay[day], marker{alertIdx: i, time: t})
			}
		}
	}
	for day := range byDay {
		markers := byDay[day]
		sort.SliceStable(markers, func(i, j int) bool {
			return minutesOf(markers[i].time) < minutesOf(markers[j].time)
		})
	}
	return byDay
}

func countMarkers(byDay map[model.Weekday][]marker) int {
	n := 0
	for _, markers := range byDay {
		n += len(markers)
	}
	return n
}

// calculateHourRange определяет диапазон часов для отображения
func calculateHourRange(byDay map[model.Weekday][]marker) hourRange {
	minHour := 24
	maxHour := -1
	for _, markers := range byDay {
		for _, m := range markers {
			if m.time.Hours < minHour {
				minHour = m.time.Hours
			}
			if m.time.Hours > maxHour {
				maxHour = m.time.Hours
			}
		}
	}

	if maxHour < 0 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := max(minHour-hourPaddingTop, 0)
	endHour := min(maxHour+hourPaddingBot, 23)

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour + 1,
	}
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

func drawHeader(dc *gg.Context, total int) {
	title := fmt.Sprintf("Weekly reminders: %d", total)
	if total == 0 {
		title = "No active reminders"
	}

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	_, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, float64(leftLabelsWidth), float64(headerHeight)/8+h/2, 0, 0)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, FontStyleRegular)
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx < hours.total; hIdx++ {
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		label := schedule.FormatAlertTime(model.AlertTime{Hours: hours.start + hIdx})
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, float64(headerHeight), float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, day model.Weekday, x float64, dayWidth int) {
	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(string(day)[:3], x+float64(dayWidth)/2, float64(headerHeight), 0.5, -0.4)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := float64(headerHeight) + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

func drawMarker(dc *gg.Context, m marker, x float64, dayWidth int, hours hourRange, cellHeight float64) {
	at := float64(m.time.Hours) + float64(m.time.Minutes)/60.0
	y := float64(headerHeight) + (at-float64(hours.start))*cellHeight
	width := float64(dayWidth) - float64(dayPaddingX*2)
	left := x + float64(dayPaddingX)
	fill := colorFor(m.alertIdx)

	// Тень
	dc.SetColor(markerShadow)
	dc.DrawRoundedRectangle(left+shadowOffset, y+shadowOffset, width, markerHeight, markerRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(left, y, width, markerHeight, markerRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(left, y, width, markerHeight, markerRadius)
	dc.Stroke()

	loadFont(dc, markerFontSize, FontStyleBold)
	dc.SetColor(markerTextColor)
	dc.DrawStringAnchored(schedule.FormatAlertTime(m.time), left+8, y+markerHeight/2, 0, 0.35)
}

// drawCurrentTimeLine рисует красную линию текущего времени
func drawCurrentTimeLine(dc *gg.Context, now time.Time, hours hourRange, cellHeight float64, dayWidth int) {
	current := float64(now.Hour()) + float64(now.Minute())/60.0
	if current < float64(hours.start) || current > float64(hours.end+1) {
		return
	}

	x := float64(leftLabelsWidth + int(now.Weekday())*dayWidth)
	y := float64(headerHeight) + (current-float64(hours.start))*cellHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(x, y, x+float64(dayWidth), y)
	dc.Stroke()
}

// drawLegend подписывает цвета: номер alert и его pills
func drawLegend(dc *gg.Context, alerts []model.Alert, dayWidth int) {
	legendX := float64(leftLabelsWidth+totalDaysInWeek*dayWidth) + 12
	y := float64(headerHeight) + 10

	const boxW, boxH = 18.0, 14.0
	shown := 0
	for i, a := range alerts {
		if !a.IsActive {
			continue
		}
		if shown == maxLegendItems {
			break
		}
		shown++

		dc.SetColor(colorFor(i))
		dc.DrawRoundedRectangle(legendX, y, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendFontSize, FontStyleRegular)
		dc.SetColor(legendTextColor)
		dc.DrawStringAnchored(legendLabel(i, a), legendX+boxW+6, y+boxH/2, 0, 0.35)
		y += boxH + 12
	}
}

func legendLabel(i int, a model.Alert) string {
	names := make([]string, 0, len(a.Pills))
	for _, p := range a.Pills {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	label := fmt.Sprintf("#%d %s", i+1, strings.Join(names, ", "))
	// ширина колонки легенды
	const maxLen = 18
	if r := []rune(label); len(r) > maxLen {
		label = string(r[:maxLen-3]) + "..."
	}
	return label
}

func colorFor(i int) color.RGBA {
	return palette[i%len(palette)]
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

func minutesOf(t model.AlertTime) int {
	return t.Hours*60 + t.Minutes
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
