package dose

// VoxelIndex maps voxel (i,j,k) to its position in Doses: i + nx*j + nx*ny*k.
func (b *DoseBlock) VoxelIndex(i, j, k int) int {
	return i + b.Counts[X]*j + b.Counts[X]*b.Counts[Y]*k
}

// VoxelCoords is the inverse of VoxelIndex.
func (b *DoseBlock) VoxelCoords(lin int) (i, j, k int) {
	nx, ny := b.Counts[X], b.Counts[Y]
	i = lin % nx
	j = (lin / nx) % ny
	k = lin / (nx * ny)
	return
}

// NodeIndex maps grid corner (i,j,k) to a 0-based node index, x fastest.
func (b *DoseBlock) NodeIndex(i, j, k int) int {
	sx, sy := b.Counts[X]+1, b.Counts[Y]+1
	return i + sx*j + sx*sy*k
}

// HexCorners returns the 0-based node indices of voxel (i,j,k) in gmsh
// hexahedron order:
//
//	       3----------2
//	       |\         |\
//	       | \        | \
//	       |  7-------+--6
//	       |  |       |  |
//	       0--+-------1  |
//	        \ |        \ |
//	         \|         \|
//	          4----------5
//
// 0..3 lie on the k face and 4..7 on the k+1 face.
func (b *DoseBlock) HexCorners(i, j, k int) [8]int {
	n0 := b.NodeIndex(i, j, k)
	dy := b.Counts[X] + 1
	dz := dy * (b.Counts[Y] + 1)
	return [8]int{
		n0,
		n0 + 1,
		n0 + dy + 1,
		n0 + dy,
		n0 + dz,
		n0 + dz + 1,
		n0 + dz + dy + 1,
		n0 + dz + dy,
	}
}
