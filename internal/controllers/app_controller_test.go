package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glnc_delivery/internal/models"
	"glnc_delivery/internal/testutil"
)

type appReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  uint   `json:"userId"`
}

func TestAppLogin(t *testing.T) {
	e := newEnv(t, testutil.At(2024, 1, 10, 9, 0, 0))

	w := e.do(t, http.MethodPost, "/api/app/login", gin.H{"code": "22222"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var ok appReply
	decode(t, w, &ok)
	assert.True(t, ok.Success)
	assert.Equal(t, e.driver.ID, ok.UserID)
	claims, err := e.tokens.ValidateToken(ok.Token)
	require.NoError(t, err)
	assert.Equal(t, e.driver.ID, claims.UserID)

	w = e.do(t, http.MethodPost, "/api/app/login", gin.H{"code": "11111"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var denied appReply
	decode(t, w, &denied)
	assert.Contains(t, denied.Message, "Access denied")

	w = e.do(t, http.MethodPost, "/api/app/login", gin.H{"code": "99999"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var invalid appReply
	decode(t, w, &invalid)
	assert.Equal(t, "Invalid code.", invalid.Message)
	assert.NotEqual(t, denied.Message, invalid.Message)
}

func TestAppRequiresDriverToken(t *testing.T) {
	e := newEnv(t, testutil.At(2024, 1, 10, 9, 0, 0))

	w := e.do(t, http.MethodPost, "/api/app/delivery", gin.H{"user_id": e.driver.ID}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(t, http.MethodPost, "/api/app/delivery", gin.H{"user_id": e.admin.ID}, e.token(t, e.admin))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAppDeliveriesWindow(t *testing.T) {
	e := newEnv(t, testutil.At(2024, 1, 10, 9, 0, 0))
	at := testutil.At

	today := testutil.CreateDelivery(t, e.db, e.driver, e.truck, e.supplier,
		at(2024, 1, 10, 7, 0, 0), at(2024, 1, 10, 8, 0, 0), nil)
	last := testutil.CreateDelivery(t, e.db, e.driver, e.truck, e.supplier,
		at(2024, 1, 13, 22, 0, 0), at(2024, 1, 13, 23, 59, 59), func(d *models.Delivery) {
			d.ReturnFlag = true
			note := "client absent"
			d.Description = &note
		})
	testutil.CreateDelivery(t, e.db, e.driver, e.truck, e.supplier,
		at(2024, 1, 13, 23, 0, 0), at(2024, 1, 14, 0, 0, 0), nil)
	testutil.CreateDelivery(t, e.db, e.driver, e.truck, e.supplier,
		at(2024, 1, 9, 22, 0, 0), at(2024, 1, 9, 23, 0, 0), nil)
	testutil.CreateDelivery(t, e.db, e.other, e.truck, e.supplier,
		at(2024, 1, 11, 8, 0, 0), at(2024, 1, 11, 9, 0, 0), nil)

	w := e.do(t, http.MethodPost, "/api/app/delivery", gin.H{"user_id": e.driver.ID}, e.token(t, e.driver))
	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]interface{}
	decode(t, w, &rows)
	require.Len(t, rows, 2)

	assert.EqualValues(t, today.ID, rows[0]["id"])
	assert.Equal(t, "2024-01-10 08:00:00", rows[0]["date_time_leave"])
	assert.Equal(t, "", rows[0]["date_time_arrival"])
	assert.EqualValues(t, 0, rows[0]["return_flag"])
	assert.Equal(t, "1 rue de la Paix", rows[0]["Address"])
	assert.Equal(t, "0600000", rows[0]["Contact"])
	assert.Equal(t, "", rows[0]["Detail"])

	assert.EqualValues(t, last.ID, rows[1]["id"])
	assert.EqualValues(t, 1, rows[1]["return_flag"])
	assert.Equal(t, "client absent", rows[1]["Detail"])
}

func TestAppRejectsOtherUsersData(t *testing.T) {
	e := newEnv(t, testutil.At(2024, 1, 10, 9, 0, 0))
	token := e.token(t, e.driver)

	w := e.do(t, http.MethodPost, "/api/app/delivery", gin.H{"user_id": e.other.ID}, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodPost, "/api/app/excel/pointer", gin.H{
		"time": "2024-01-10 08:00:00", "lati": -22.27, "longi": 166.45, "type": 1, "user_id": e.other.ID,
	}, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	theirs := testutil.CreateDelivery(t, e.db, e.other, e.truck, e.supplier,
		testutil.At(2024, 1, 10, 10, 0, 0), testutil.At(2024, 1, 10, 11, 0, 0), nil)
	w = e.do(t, http.MethodPost, "/api/app/delivery_accept", gin.H{"id": theirs.ID}, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored models.Delivery
	require.NoError(t, e.db.First(&stored, theirs.ID).Error)
	assert.Nil(t, stored.AcceptAt)
}

func TestAppAcceptThenSign(t *testing.T) {
	now := testutil.At(2024, 1, 10, 9, 30, 0)
	e := newEnv(t, now)
	token := e.token(t, e.driver)
	d := testutil.CreateDelivery(t, e.db, e.driver, e.truck, e.supplier,
		testutil.At(2024, 1, 10, 10, 0, 0), testutil.At(2024, 1, 10, 11, 0, 0), nil)

	w := e.do(t, http.MethodPost, "/api/app/delivery_accept", gin.H{"id": d.ID}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(t, http.MethodPost, "/api/app/sign_delivery", gin.H{
		"delivery_id":  d.ID,
		"weight":       12.5,
		"satisfaction": 2,
		"comment":      "ok",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Delivery
	require.NoError(t, e.db.First(&stored, d.ID).Error)
	require.NotNil(t, stored.ArrivalAt)
	assert.True(t, stored.ArrivalAt.Equal(now))
	assert.Equal(t, 12.5, stored.Weight)

	w = e.do(t, http.MethodPost, "/api/app/delivery_cancel", gin.H{"id": d.ID}, token)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAppCancelIsIdempotent(t *testing.T) {
	e := newEnv(t, testutil.At(2024, 1, 10, 9, 0, 0))
	token := e.token(t, e.driver)
	d := testutil.CreateDelivery(t, e.db, e.driver, e.truck, e.supplier,
		testutil.At(2024, 1, 10, 10, 0, 0), testutil.At(2024, 1, 10, 11, 0, 0), nil)

	w := e.do(t, http.MethodPost, "/api/app/delivery_cancel", gin.H{"id": d.ID, "comment": "closed"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	var first appReply
	decode(t, w, &first)
	assert.Equal(t, "Delivery cancelled successfully.", first.Message)

	w = e.do(t, http.MethodPost, "/api/app/delivery_cancel", gin.H{"id": d.ID}, token)
	require.Equal(t, http.StatusOK, w.Code)
	var second appReply
	decode(t, w, &second)
	assert.Equal(t, "Delivery is already cancelled.", second.Message)
}

func TestAppSignCoordinateUpserts(t *testing.T) {
	e := newEnv(t, testutil.At(2024, 1, 10, 9, 0, 0))
	token := e.token(t, e.driver)
	d := testutil.CreateDelivery(t, e.db, e.driver, e.truck, e.supplier,
		testutil.At(2024, 1, 10, 10, 0, 0), testutil.At(2024, 1, 10, 11, 0, 0), nil)

	for _, lat := range []float64{-22.1, -22.2} {
		w := e.do(t, http.MethodPost, "/api/app/sign_coordinate", gin.H{
			"delivery_id": d.ID, "user_id": e.driver.ID, "latitude": lat, "longitude": 166.4,
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var rows []models.DeliveryGeolocation
	require.NoError(t, e.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, -22.2, rows[0].SignLat)
}

func TestAppSignCoordinateRequiresOwnDelivery(t *testing.T) {
	e := newEnv(t, testutil.At(2024, 1, 10, 9, 0, 0))
	theirs := testutil.CreateDelivery(t, e.db, e.other, e.truck, e.supplier,
		testutil.At(2024, 1, 10, 10, 0, 0), testutil.At(2024, 1, 10, 11, 0, 0), nil)
	require.NoError(t, e.db.Create(&models.DeliveryGeolocation{
		SignLat: -22.5, SignLong: 166.5, DeliveryID: theirs.ID, UserID: e.other.ID,
	}).Error)

	w := e.do(t, http.MethodPost, "/api/app/sign_coordinate", gin.H{
		"delivery_id": theirs.ID, "user_id": e.driver.ID, "latitude": -22.1, "longitude": 166.4,
	}, e.token(t, e.driver))
	assert.Equal(t, http.StatusForbidden, w.Code)

	var rows []models.DeliveryGeolocation
	require.NoError(t, e.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, e.other.ID, rows[0].UserID)
	assert.Equal(t, -22.5, rows[0].SignLat)
}

func TestAppAcceptsNumbersSentAsStrings(t *testing.T) {
	e := newEnv(t, testutil.At(2024, 1, 10, 9, 0, 0))
	token := e.token(t, e.driver)
	d := testutil.CreateDelivery(t, e.db, e.driver, e.truck, e.supplier,
		testutil.At(2024, 1, 10, 10, 0, 0), testutil.At(2024, 1, 10, 11, 0, 0), nil)

	w := e.do(t, http.MethodPost, "/api/app/sign_delivery", gin.H{
		"delivery_id":  itoa(d.ID),
		"weight":       "12.5",
		"satisfaction": "3",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Delivery
	require.NoError(t, e.db.First(&stored, d.ID).Error)
	assert.Equal(t, 12.5, stored.Weight)
	require.NotNil(t, stored.Satisfaction)
	assert.Equal(t, 3, *stored.Satisfaction)
}

func TestAppReportsDecodingErrors(t *testing.T) {
	e := newEnv(t, testutil.At(2024, 1, 10, 9, 0, 0))

	w := e.do(t, http.MethodPost, "/api/app/sign_delivery", gin.H{
		"delivery_id": 1, "weight": "heavy",
	}, e.token(t, e.driver))
	require.Equal(t, http.StatusBadRequest, w.Code)
	var res appReply
	decode(t, w, &res)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "expected a number")
}
