package entities

import (
	"testing"

	"github.com/gonewx/bowling/pkg/components"
	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/ecs"
	"github.com/gonewx/bowling/pkg/physics"
)

// TestNewPinEntity_Success 测试成功创建单个球瓶
func TestNewPinEntity_Success(t *testing.T) {
	em := ecs.NewEntityManager()
	world := newTestWorld()
	cfg := config.DefaultBowlingConfig()

	entityID, body, err := NewPinEntity(em, world, cfg, 0)
	if err != nil {
		t.Fatalf("NewPinEntity failed: %v", err)
	}
	if body == nil {
		t.Fatal("Expected non-nil pin body")
	}

	// 主瓶位于球道中线
	x, y, z, _ := cfg.PinPosition(0)
	if body.Position.X != x || body.Position.Y != y || body.Position.Z != z {
		t.Errorf("pin position: got %v, want (%v, %v, %v)", body.Position, x, y, z)
	}
	if body.Kind != physics.BodyPin {
		t.Errorf("body kind: got %v, want BodyPin", body.Kind)
	}

	// 新瓶直立
	if got := body.TiltDot(); got != 1.0 {
		t.Errorf("new pin tilt dot: got %v, want 1", got)
	}

	// 验证 PinComponent
	pin, ok := ecs.GetComponent[*components.PinComponent](em, entityID)
	if !ok {
		t.Fatal("Expected PinComponent to be present")
	}
	if pin.Index != 0 {
		t.Errorf("pin index: got %d, want 0", pin.Index)
	}
	if pin.Body != body {
		t.Error("PinComponent body does not match returned body")
	}
	if pin.HalfHeight != cfg.Physics.Pin.HalfHeight {
		t.Errorf("pin half height: got %v, want %v", pin.HalfHeight, cfg.Physics.Pin.HalfHeight)
	}
}

// TestNewPinEntity_IndexOutOfRange 测试越界瓶序号返回错误
func TestNewPinEntity_IndexOutOfRange(t *testing.T) {
	em := ecs.NewEntityManager()
	world := newTestWorld()
	cfg := config.DefaultBowlingConfig()

	if _, _, err := NewPinEntity(em, world, cfg, config.PinCount); err == nil {
		t.Error("NewPinEntity with index 10: got nil error")
	}
	if _, _, err := NewPinEntity(em, world, cfg, -1); err == nil {
		t.Error("NewPinEntity with index -1: got nil error")
	}
}

// TestNewPinRackEntities_FullRack 测试整副球瓶的数量与序号
func TestNewPinRackEntities_FullRack(t *testing.T) {
	em := ecs.NewEntityManager()
	world := newTestWorld()
	cfg := config.DefaultBowlingConfig()

	ids, bodies, err := NewPinRackEntities(em, world, cfg)
	if err != nil {
		t.Fatalf("NewPinRackEntities failed: %v", err)
	}
	if len(ids) != config.PinCount {
		t.Fatalf("pin entity count: got %d, want %d", len(ids), config.PinCount)
	}
	if len(bodies) != config.PinCount {
		t.Fatalf("pin body count: got %d, want %d", len(bodies), config.PinCount)
	}

	// 序号按创建顺序升序且各不相同
	seen := make(map[int]bool)
	for i, id := range ids {
		pin, ok := ecs.GetComponent[*components.PinComponent](em, id)
		if !ok {
			t.Fatalf("pin %d missing PinComponent", i)
		}
		if pin.Index != i {
			t.Errorf("pin %d index: got %d, want %d", i, pin.Index, i)
		}
		if seen[pin.Index] {
			t.Errorf("duplicate pin index %d", pin.Index)
		}
		seen[pin.Index] = true
		if pin.Body != bodies[i] {
			t.Errorf("pin %d body slice mismatch", i)
		}
	}

	// 全部直立、位置与配置摆位一致
	for i, body := range bodies {
		if body.TiltDot() != 1.0 {
			t.Errorf("pin %d not upright: tilt dot %v", i, body.TiltDot())
		}
		x, _, z, _ := cfg.PinPosition(i)
		if body.Position.X != x || body.Position.Z != z {
			t.Errorf("pin %d position: got (%v, %v), want (%v, %v)",
				i, body.Position.X, body.Position.Z, x, z)
		}
	}
}
