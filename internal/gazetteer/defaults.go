package gazetteer

// defaultEntries is the built-in seed set. Persistent catalog rows loaded at
// startup extend it; unknown names fall through to the external geocoder.
var defaultEntries = map[string]Coordinates{
	"中目黑河畔":  {Lng: 139.6993, Lat: 35.6441},
	"目黑川":    {Lng: 139.6986, Lat: 35.6438},
	"浅草寺":    {Lng: 139.7967, Lat: 35.7148},
	"明治神宫":   {Lng: 139.6993, Lat: 35.6764},
	"涩谷十字路口": {Lng: 139.7006, Lat: 35.6595},
	"新宿御苑":   {Lng: 139.7100, Lat: 35.6852},
	"上野公园":   {Lng: 139.7737, Lat: 35.7148},
	"筑地市场":   {Lng: 139.7706, Lat: 35.6654},
	"东京塔":    {Lng: 139.7454, Lat: 35.6586},
	"秋叶原":    {Lng: 139.7730, Lat: 35.6984},
	"tokyo station":    {Lng: 139.7671, Lat: 35.6812},
	"shibuya crossing": {Lng: 139.7006, Lat: 35.6595},
	"meguro river":     {Lng: 139.6986, Lat: 35.6438},
	"senso-ji":         {Lng: 139.7967, Lat: 35.7148},
	"ueno park":        {Lng: 139.7737, Lat: 35.7148},
}
