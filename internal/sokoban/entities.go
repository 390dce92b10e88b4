package sokoban

import "github.com/plus3/boxpush/ecs"

// Asset paths, relative to the host's asset root.
var (
	floorSprite  = MustRenderable("images/floor.png")
	wallSprite   = MustRenderable("images/wall.png")
	playerSprite = MustRenderable("images/player_1.png", "images/player_2.png", "images/player_3.png")

	boxSprites = map[BoxColor]Renderable{
		Red:  MustRenderable("images/box_red_1.png", "images/box_red_2.png"),
		Blue: MustRenderable("images/box_blue_1.png", "images/box_blue_2.png"),
	}
	spotSprites = map[BoxColor]Renderable{
		Red:  MustRenderable("images/box_spot_red.png"),
		Blue: MustRenderable("images/box_spot_blue.png"),
	}
)

func spawnFloor(storage *ecs.Storage, x, y int) ecs.EntityId {
	return storage.Spawn(
		Position{X: x, Y: y, Z: LayerFloor},
		floorSprite,
	)
}

func spawnWall(storage *ecs.Storage, x, y int) ecs.EntityId {
	return storage.Spawn(
		Position{X: x, Y: y, Z: LayerPiece},
		wallSprite,
		Wall{},
		Immovable{},
	)
}

func spawnPlayer(storage *ecs.Storage, x, y int) ecs.EntityId {
	return storage.Spawn(
		Position{X: x, Y: y, Z: LayerPiece},
		playerSprite,
		Player{},
		Movable{},
	)
}

func spawnBox(storage *ecs.Storage, x, y int, color BoxColor) ecs.EntityId {
	return storage.Spawn(
		Position{X: x, Y: y, Z: LayerPiece},
		boxSprites[color],
		Box{Color: color},
		Movable{},
	)
}

func spawnBoxSpot(storage *ecs.Storage, x, y int, color BoxColor) ecs.EntityId {
	return storage.Spawn(
		Position{X: x, Y: y, Z: LayerSpot},
		spotSprites[color],
		BoxSpot{Color: color},
	)
}
