package web

// playerHTML is the page served at the root: a canvas fed by the
// websocket frame stream. Frames arrive brotli-compressed; the
// browser's DecompressionStream cannot decode brotli, so the client
// keeps decoded frames keyed by hash and the server falls back to a
// cache reference whenever it can.
const playerHTML = `<!DOCTYPE html>
<html>
<head>
<title>dotmatrix</title>
<style>
  body { background: #1a1a1a; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; }
  canvas { image-rendering: pixelated; width: 640px; height: 576px; }
</style>
<script src="https://unpkg.com/brotli-wasm@2.0.1/index.web.js"></script>
</head>
<body>
<canvas id="screen" width="160" height="144"></canvas>
<script>
(async () => {
  const brotli = await window.BrotliWasm.default();
  const ctx = document.getElementById("screen").getContext("2d");
  const cache = new Map();

  const ws = new WebSocket("ws://" + location.host + "/ws");
  ws.binaryType = "arraybuffer";
  ws.onmessage = (ev) => {
    const data = new Uint8Array(ev.data);
    const kind = data[0];
    const hash = Array.from(data.slice(1, 9)).join(",");

    let pixels;
    if (kind === 0x02) {
      pixels = cache.get(hash);
      if (!pixels) return;
    } else {
      pixels = brotli.decompress(data.slice(9));
      cache.set(hash, pixels);
      if (cache.size > 32) cache.delete(cache.keys().next().value);
    }

    ctx.putImageData(new ImageData(new Uint8ClampedArray(pixels), 160, 144), 0, 0);
  };
})();
</script>
</body>
</html>
`
