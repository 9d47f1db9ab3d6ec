package game

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- SocketConn ---

type MockSocketConn struct {
	mock.Mock
}

func (m *MockSocketConn) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockSocketConn) Read() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSocketConn) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSocketConn) Close() {
	m.Called()
}

// --- WordPicker ---

type MockWordPicker struct {
	mock.Mock
}

func (m *MockWordPicker) Pick() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockWordPicker) Hint(word string) string {
	args := m.Called(word)
	return args.String(0)
}

// --- PeriodicTickerChannelCreator ---

type MockPeriodicTickerChannelCreator struct {
	mock.Mock
}

func (m *MockPeriodicTickerChannelCreator) Create(duration time.Duration) <-chan time.Time {
	args := m.Called(duration)
	return args.Get(0).(chan time.Time)
}

// --- Player ---

// MockPlayer records everything sent to it so scenario tests can assert on
// the outbound traffic.
type MockPlayer struct {
	mock.Mock
	sent [][]byte
}

func NewMockPlayer(id, username string) *MockPlayer {
	p := &MockPlayer{}
	p.On("ID").Return(id)
	p.On("Username").Return(username)
	p.On("SetRoom", mock.Anything).Return()
	p.On("CancelAndRelease").Return()
	p.On("Ping").Return(nil)
	p.On("Send", mock.Anything).Run(func(args mock.Arguments) {
		p.sent = append(p.sent, args.Get(0).([]byte))
	}).Return(nil)
	return p
}

func (m *MockPlayer) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlayer) Username() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlayer) Send(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockPlayer) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockPlayer) SetRoom(r Room) {
	m.Called(r)
}

func (m *MockPlayer) CancelAndRelease() {
	m.Called()
}

func (m *MockPlayer) ResetSent() {
	m.sent = nil
}

// --- Room ---

type MockRoom struct {
	mock.Mock
}

func (m *MockRoom) RequestJoin(jreq roomJoinRequest) {
	m.Called(jreq)
}

func (m *MockRoom) Send(ctx context.Context, e ClientEnvelope) {
	m.Called(ctx, e)
}

func (m *MockRoom) RemoveMe(ctx context.Context, p Player) {
	m.Called(ctx, p)
}

func (m *MockRoom) Tick(now time.Time) {
	m.Called(now)
}

func (m *MockRoom) PingPlayers() {
	m.Called()
}

func (m *MockRoom) GameLoop() {
	m.Called()
}

func (m *MockRoom) CloseAndRelease() {
	m.Called()
}

func (m *MockRoom) SetID(id string) {
	m.Called(id)
}

func (m *MockRoom) SetParentLobby(l Lobby) {
	m.Called(l)
}

// --- Lobby ---

type MockLobby struct {
	mock.Mock
}

func (m *MockLobby) JoinRoom(ctx context.Context, roomID string, p Player) error {
	args := m.Called(ctx, roomID, p)
	return args.Error(0)
}

func (m *MockLobby) RemoveRoom(roomID string) {
	m.Called(roomID)
}
